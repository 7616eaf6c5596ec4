// bam - serves read-only key/value lookups from a large TSV file over
// HTTP, backed by a minimal perfect hash and a memory-mapped data file.
//
// (c) 2026

package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	flag "github.com/opencoff/pflag"

	"github.com/StefanKarpinski/bam/internal/bootstrap"
	"github.com/StefanKarpinski/bam/internal/errs"
	"github.com/StefanKarpinski/bam/internal/httpapi"
	"github.com/StefanKarpinski/bam/internal/mph"
)

func main() {
	var (
		indexPath string
		port      int
		threads   int
		exitAfter bool
		algoName  string
		verbose   bool
	)

	usage := fmt.Sprintf(`%s - serve key/value lookups from a TSV file

Usage: %s [options] <tsv-file>

`, os.Args[0], os.Args[0])

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.StringVarP(&indexPath, "index", "i", "", `Use <file> as index, or "-" for none`)
	fs.IntVarP(&port, "port", "p", 8080, "Listen on TCP port number")
	fs.IntVarP(&threads, "threads", "t", 0, "Serve requests using <n> threads")
	fs.BoolVarP(&exitAfter, "exit", "x", false, "Index and exit without serving data")
	fs.StringVarP(&algoName, "algorithm", "a", "chd", "MPH construction algorithm: chd or bbhash")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Enable debug-level logging")
	fs.Usage = func() {
		fmt.Print(usage)
		fs.PrintDefaults()
		os.Exit(0)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		die("%s", err)
	}

	args := fs.Args()
	if len(args) != 1 {
		fmt.Print(usage)
		fs.PrintDefaults()
		os.Exit(1)
	}

	algo, err := mph.ParseAlgorithm(algoName)
	if err != nil {
		die("%s", err)
	}

	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if port <= 0 {
		die("invalid port number: %d", port)
	}

	load := 0.9
	if algo == mph.BBHash {
		load = 2.0
	}

	log, err := bootstrap.NewLogger(verbose)
	if err != nil {
		die("can't initialize logger: %s", err)
	}
	defer log.Sync()

	opts := &bootstrap.Options{
		DataPath:       args[0],
		IndexPath:      indexPath,
		Port:           port,
		Threads:        threads,
		ExitAfterIndex: exitAfter,
		Algorithm:      algo,
		Load:           load,
		Verbose:        verbose,
	}

	ctx, err := bootstrap.Run(opts, log)
	if err != nil {
		dieWithCode(err)
	}
	defer ctx.Close()

	if exitAfter {
		return
	}

	addr := fmt.Sprintf(":%d", port)
	handler := httpapi.Handler(ctx.Lookup, log)
	srv := httpapi.NewServer(addr, threads, handler, log)

	serveErrCh := make(chan error, 1)
	go func() {
		serveErrCh <- srv.ListenAndServe()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErrCh:
		if err != nil {
			die("%s", errs.New(errs.ServeError, err, "http server"))
		}
	case s := <-sig:
		log.Infow("shutting down", "signal", s.String())
		if err := srv.Shutdown(); err != nil {
			log.Warnw("error during shutdown", "error", err)
		}
	}
}

// die prints a diagnostic line to stderr and exits with a nonzero status.
func die(f string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, "bam: "+f+"\n", v...)
	os.Exit(1)
}

// dieWithCode maps a typed bam error to a diagnostic and an exit code.
// Exit codes distinguish the failure class for scripts driving bam, but
// any nonzero value satisfies the "fatal error" contract.
func dieWithCode(err error) {
	code := errs.CodeOf(err)
	status := 1
	switch code {
	case errs.ConfigError:
		status = 2
	case errs.IndexError:
		status = 3
	case errs.BuildError:
		status = 4
	case errs.ServeError:
		status = 5
	}
	fmt.Fprintf(os.Stderr, "bam: %s\n", err)
	os.Exit(status)
}
