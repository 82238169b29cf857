// Command server runs the proxy and world server in a single process: one
// listener terminates the client wire protocol and hands each logged-in
// player straight to a player.Session against a local world.Manager, with
// no internal network hop. cmd/proxy and cmd/world split the same pieces
// across two processes for deployments that want the proxy and world
// server on separate machines.
package main

import (
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/vibeshit/mcserver/internal/plugin"
	"github.com/vibeshit/mcserver/internal/player"
	"github.com/vibeshit/mcserver/internal/proxy"
	"github.com/vibeshit/mcserver/internal/world"
)

func main() {
	address := flag.String("address", ":25565", "Server address to listen on")
	maxPlayers := flag.Int("max-players", 20, "Maximum number of players")
	motd := flag.String("motd", "A Minecraft Server", "Server MOTD")
	seed := flag.Int64("seed", 0, "World seed (0 = random)")
	flag.Parse()
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ln, err := net.Listen("tcp", *address)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", *address, err)
	}

	manager := world.NewManager()
	overworld := manager.Default(*seed)
	hooks := plugin.NewRegistry()

	var online atomic.Int32
	status := func() proxy.StatusInfo {
		return proxy.StatusInfo{MOTD: *motd, MaxPlayers: *maxPlayers, Online: int(online.Load())}
	}

	log.Printf("Server started, listening on %s (max players: %d)", *address, *maxPlayers)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("Shutting down server (received signal: %v)...", sig)
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			break
		}
		go handleConnection(conn, manager, overworld, hooks, status, &online)
	}
	log.Println("Server stopped.")
}

func handleConnection(conn net.Conn, manager *world.Manager, w *world.World, hooks *plugin.Registry, status func() proxy.StatusInfo, online *atomic.Int32) {
	result, ok := proxy.HandleConnection(conn, status)
	if !ok {
		conn.Close()
		return
	}

	online.Add(1)
	defer online.Add(-1)

	eid := manager.NextEntityID()
	sess := player.NewSessionFromConn(conn, result.Version, result.UUID, result.Username, w, hooks, eid)
	log.Printf("Player %s (EID: %d) joined the game", result.Username, eid)
	sess.Run()
	log.Printf("Player %s left the game", result.Username)
}
