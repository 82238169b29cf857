// Command proxy terminates the vanilla client wire protocol and hands
// logged-in players off to a world server (cmd/world) over one multiplexed
// internal stream.
package main

import (
	"flag"
	"log"
	"net"
	"sync/atomic"

	"github.com/vibeshit/mcserver/internal/config"
	"github.com/vibeshit/mcserver/internal/ipc"
	"github.com/vibeshit/mcserver/internal/proxy"
)

func main() {
	configPath := flag.String("config", "proxy.yaml", "path to the proxy's YAML config")
	listenAddr := flag.String("listen", "", "client-facing listen address (overrides config file)")
	worldAddr := flag.String("world", "", "world server address to dial (overrides config file)")
	flag.Parse()

	cfg, err := config.LoadProxy(*configPath)
	if err != nil {
		log.Fatalf("proxy: load config: %v", err)
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *worldAddr != "" {
		cfg.WorldAddr = *worldAddr
	}

	sess, err := ipc.Dial(cfg.WorldAddr)
	if err != nil {
		log.Fatalf("proxy: dial world server at %s: %v", cfg.WorldAddr, err)
	}
	defer sess.Close()

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Fatalf("proxy: listen on %s: %v", cfg.ListenAddr, err)
	}
	log.Printf("proxy: listening on %s, forwarding to world server at %s", cfg.ListenAddr, cfg.WorldAddr)

	var online atomic.Int32
	status := func() proxy.StatusInfo {
		return proxy.StatusInfo{MOTD: "A Minecraft Server", MaxPlayers: 100, Online: int(online.Load())}
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go handleClient(conn, sess, status, &online)
	}
}

func handleClient(conn net.Conn, sess *ipc.Session, status func() proxy.StatusInfo, online *atomic.Int32) {
	result, ok := proxy.HandleConnection(conn, status)
	if !ok {
		conn.Close()
		return
	}

	stream, err := sess.Open(ipc.Login{
		Username:        result.Username,
		UUID:            result.UUID,
		ProtocolVersion: result.Version.ProtocolNumber(),
	})
	if err != nil {
		log.Printf("proxy: open world stream for %s: %v", result.Username, err)
		conn.Close()
		return
	}

	online.Add(1)
	defer online.Add(-1)
	relay(conn, stream)
}

// relay pipes framed bytes unmodified between the client connection and the
// world server's stream for this player: the world server already knows
// this player's negotiated version (from the Login frame) and does its own
// per-version packet translation, the same translation it would do for a
// directly-connected client in the single-process deployment.
func relay(client net.Conn, stream *ipc.Stream) {
	defer client.Close()
	defer stream.Close()
	done := make(chan struct{}, 2)
	go func() { copyFrames(stream.Conn, client); done <- struct{}{} }()
	go func() { copyFrames(client, stream.Conn); done <- struct{}{} }()
	<-done
}

func copyFrames(dst, src net.Conn) {
	buf := make([]byte, 32*1024)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}
}
