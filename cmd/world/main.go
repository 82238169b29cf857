// Command world runs the world server: the authoritative simulation that a
// protocol proxy (cmd/proxy) hands logged-in players off to over the
// internal yamux-multiplexed stream.
package main

import (
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/vibeshit/mcserver/internal/config"
	"github.com/vibeshit/mcserver/internal/ipc"
	"github.com/vibeshit/mcserver/internal/plugin"
	"github.com/vibeshit/mcserver/internal/player"
	"github.com/vibeshit/mcserver/internal/proto"
	"github.com/vibeshit/mcserver/internal/world"
)

func main() {
	configPath := flag.String("config", "world.yaml", "path to the world server's YAML config")
	var flags config.WorldFlags
	config.RegisterWorldFlags(flag.CommandLine, &flags)
	flag.Parse()

	cfg, err := config.LoadWorld(*configPath)
	if err != nil {
		log.Fatalf("world: load config: %v", err)
	}
	cfg = flags.Apply(cfg)

	manager := world.NewManager()
	overworld := manager.Default(cfg.Seed)
	hooks := plugin.NewRegistry()

	ln, err := ipc.Listen(cfg.InternalAddr)
	if err != nil {
		log.Fatalf("world: listen on %s: %v", cfg.InternalAddr, err)
	}
	log.Printf("world: listening for proxies on %s (seed=%d, view-distance=%d)", cfg.InternalAddr, cfg.Seed, cfg.ViewDistance)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("world: shutting down")
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go serveProxy(conn, manager, overworld, hooks)
	}
}

func serveProxy(conn net.Conn, manager *world.Manager, overworld *world.World, hooks *plugin.Registry) {
	sess, err := ipc.ServeSession(conn)
	if err != nil {
		log.Printf("world: proxy session handshake: %v", err)
		return
	}
	defer sess.Close()

	for {
		stream, login, err := sess.Accept()
		if err != nil {
			return
		}
		version, ok := proto.VersionByProtocolNumber(login.ProtocolVersion)
		if !ok {
			stream.Close()
			continue
		}
		go servePlayer(stream, version, login, manager, overworld, hooks)
	}
}

func servePlayer(stream *ipc.Stream, version proto.Version, login ipc.Login, manager *world.Manager, overworld *world.World, hooks *plugin.Registry) {
	eid := manager.NextEntityID()
	sess := player.NewSession(stream.Conn, stream.Reader, stream.Writer, version, login.UUID, login.Username, overworld, hooks, eid)
	log.Printf("world: %s (eid %d, proto %d) joined via proxy", login.Username, eid, login.ProtocolVersion)
	sess.Run()
	log.Printf("world: %s left", login.Username)
}
