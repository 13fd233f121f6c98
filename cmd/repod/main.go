// Repod serves Interest/Content exchanges out of a content-addressed
// object repository (SPEC_FULL.md §4). It binds whatever transports are
// named on the command line or in a -c YAML file, runs the startup
// scan, and then drives the I/O event loop until signalled to stop.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/repodigest/repod/internal/config"
	"github.com/repodigest/repod/internal/ioloop"
	"github.com/repodigest/repod/internal/repo"
	"github.com/repodigest/repod/internal/repolog"
	"github.com/repodigest/repod/internal/resolve"
	"github.com/repodigest/repod/internal/transport"
)

func main() {
	f, err := config.Parse(os.Args[1:])
	if err != nil {
		repolog.Error.Printf("repod: %v", err)
		os.Exit(2)
	}
	if err := repolog.SetLevel(f.LogLevel); err != nil {
		repolog.Error.Printf("repod: %v, defaulting to info", err)
	}

	mode := resolve.IndexMode
	if f.Mode == config.ModeFile {
		mode = resolve.FileMode
	}

	r, scanRes, err := repo.Open(f.Root, mode)
	if err != nil {
		repolog.Error.Fatalf("repod: opening repository at %q: %v", f.Root, err)
	}
	repolog.Info.Printf("repod: scanned %q: %d loaded, %d ignored", f.Root, scanRes.Loaded, scanRes.Ignored)

	// -i ingests a directory and exits without starting the event loop
	// (SPEC_FULL.md §4.6/§6).
	if f.ImportDir != "" {
		res, err := r.Import(f.ImportDir)
		if err != nil {
			repolog.Error.Fatalf("repod: import from %q: %v", f.ImportDir, err)
		}
		repolog.Info.Printf("repod: imported %q: %d imported, %d existing, %d skipped",
			f.ImportDir, res.Imported, res.Existing, res.Skipped)
		return
	}

	transports, err := buildTransports(f)
	if err != nil {
		repolog.Error.Fatalf("repod: %v", err)
	}
	if len(transports) == 0 {
		repolog.Error.Fatalf("repod: no transports configured; pass -u/-x/-e or -c")
	}

	loop := ioloop.New(transports, r.Resolver())

	ctx, cancel := context.WithCancel(context.Background())
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		repolog.Info.Printf("repod: received shutdown signal")
		cancel()
	}()

	if err := loop.Run(ctx); err != nil {
		repolog.Error.Fatalf("repod: event loop exited with error: %v", err)
	}
}

// buildTransports binds sockets for every -u/-x/-e flag given plus
// every entry in an optional -c YAML file (SPEC_FULL.md §6). A
// transport constructor that reports transport.ErrUnsupported (an
// Ethernet device named on a non-Linux platform) is logged and skipped
// rather than aborting the whole binary, per SPEC_FULL.md's "server
// still runs with just UDP/unixgram configured" guarantee; any other
// construction error is fatal. On Linux the Ethernet constructor
// succeeds and the transport is kept; its ErrUnsupported reads are
// handled later by the event loop, which drops the interface.
func buildTransports(f config.Flags) ([]transport.Interface, error) {
	var ifaces []transport.Interface
	idx := 0

	add := func(name string, t transport.Interface, err error) error {
		if err != nil {
			if errors.Is(err, transport.ErrUnsupported) {
				repolog.Info.Printf("repod: %s unsupported on this platform, skipping: %v", name, err)
				return nil
			}
			return err
		}
		ifaces = append(ifaces, t)
		idx++
		return nil
	}

	if f.UDPPort != 0 {
		t, err := transport.NewUDP(idx, f.UDPPort)
		if err := add("udp", t, err); err != nil {
			return nil, err
		}
	}
	if f.UnixgramPath != "" {
		t, err := transport.NewUnixgram(idx, f.UnixgramPath)
		if err := add("unixgram", t, err); err != nil {
			return nil, err
		}
	}
	if f.EthDevice != "" {
		t, err := transport.NewEthernet(idx, f.EthDevice, 0)
		if err := add("ethernet", t, err); err != nil {
			return nil, err
		}
	}

	if f.ConfigFile == "" {
		return ifaces, nil
	}
	cf, err := config.LoadFile(f.ConfigFile)
	if err != nil {
		return nil, err
	}
	for _, u := range cf.UDP {
		t, err := transport.NewUDP(idx, u.Port)
		if err := add("udp", t, err); err != nil {
			return nil, err
		}
	}
	for _, u := range cf.Unixgram {
		t, err := transport.NewUnixgram(idx, u.Path)
		if err := add("unixgram", t, err); err != nil {
			return nil, err
		}
	}
	for _, e := range cf.Ethernet {
		t, err := transport.NewEthernet(idx, e.Device, uint16(e.Ethertype))
		if err := add("ethernet", t, err); err != nil {
			return nil, err
		}
	}
	return ifaces, nil
}
