package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/suparena/objectassoc"
	"github.com/suparena/objectassoc/config"
	"github.com/suparena/objectassoc/registry"
	"github.com/suparena/objectassoc/storagemodels"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configPath  = flag.String("config", "", "Path to a YAML config file")
	hostsFlag   = flag.Int("hosts", 1000, "Number of synthetic hosts")
	keepFlag    = flag.Int("keep", 10, "Number of hosts kept alive before collection")
	limitFlag   = flag.Int("limit", 20, "Maximum number of records to print")
)

type conn struct {
	ID      int
	Remote  string
	scratch [64]byte
}

type peerInfo struct {
	Addr string
	Seen time.Time
}

var (
	peerKey    = registry.NewKey("peer")
	retriesKey = registry.NewKey("retries")
)

type report struct {
	Version objectassoc.VersionInfo    `yaml:"version"`
	Before  storagemodels.Stats        `yaml:"before"`
	After   storagemodels.Stats        `yaml:"after"`
	Records []storagemodels.RecordInfo `yaml:"records"`
}

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := objectassoc.GetVersionInfo()
		fmt.Printf("objectassoc assocstat version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "assocstat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	reg := registry.New(cfg.Options(logger, prometheus.NewRegistry())...)

	kept := make([]*conn, 0, *keepFlag)
	for i := 0; i < *hostsFlag; i++ {
		c := &conn{ID: i, Remote: fmt.Sprintf("10.0.0.%d:443", i%256)}
		registry.GetOrInit(reg, c, peerKey, func() *peerInfo {
			return &peerInfo{Addr: c.Remote, Seen: time.Now()}
		})
		registry.SetBoxed(reg, c, retriesKey, i%3)
		if len(kept) < *keepFlag {
			kept = append(kept, c)
		}
	}
	before := reg.Stats()

	// Give the cleanup goroutine a chance to drop the released hosts.
	deadline := time.Now().Add(2 * time.Second)
	for reg.Hosts() > len(kept) && time.Now().Before(deadline) {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}

	records := reg.Snapshot()
	if len(records) > *limitFlag {
		records = records[:*limitFlag]
	}

	out, err := yaml.Marshal(report{
		Version: objectassoc.GetVersionInfo(),
		Before:  before,
		After:   reg.Stats(),
		Records: records,
	})
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	fmt.Print(string(out))

	runtime.KeepAlive(kept)
	return nil
}
