// Command gzdyn decompresses a gzip-wrapped, dynamic-Huffman-only DEFLATE
// stream (RFC 1951/1952) using the dynflate and gzip packages.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/coreos/gzdyn/capnslog"
	"github.com/coreos/gzdyn/capnslog/journald"
	"github.com/coreos/gzdyn/dynflate"
	"github.com/coreos/gzdyn/flagutil"
	gzdynGzip "github.com/coreos/gzdyn/gzip"
	"github.com/coreos/gzdyn/stop"
	"github.com/coreos/gzdyn/yamlutil"
)

const repo = "github.com/coreos/gzdyn"

var log = capnslog.NewPackageLogger(repo, "gzdyn")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("gzdyn", flag.ContinueOnError)

	var logLevel flagutil.LogLevelFlag
	fs.Var(&logLevel, "log-level", "log level: CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG, TRACE")
	logTarget := fs.String("log-target", "stderr", "where to send logs: stderr or journal")
	configPath := fs.String("config", "", "optional YAML file of flag defaults")
	digestMode := fs.String("digest", "none", "strong content digest to compute: none or blake2b")
	noVerify := fs.Bool("no-verify", false, "skip the gzip trailer's CRC32/ISIZE check")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *configPath != "" {
		raw, err := ioutil.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gzdyn: reading config: %v\n", err)
			return 1
		}
		if err := yamlutil.SetFlagsFromYaml(fs, raw); err != nil {
			fmt.Fprintf(os.Stderr, "gzdyn: applying config: %v\n", err)
			return 1
		}
	}

	setupLogging(*logTarget, logLevel.Level())

	input := "FAQ.txt.gz"
	if fs.NArg() > 0 {
		input = fs.Arg(0)
	}

	if err := decompressFile(input, *digestMode, !*noVerify); err != nil {
		log.Errorf("%v", err)
		return exitCode(err)
	}
	return 0
}

func setupLogging(target string, level capnslog.LogLevel) {
	stderrFmt := capnslog.NewStringFormatter(os.Stderr)
	var f capnslog.Formatter = stderrFmt
	if target == "journal" {
		f = journald.NewJournalFormatter(stderrFmt)
	}
	capnslog.SetFormatter(f)
	capnslog.MustRepoLogger(repo).SetGlobalLogLevel(level)
}

// decompressFile decompresses input (a gzip member) to a file in the
// current working directory, named by the gzip FNAME header field if
// present, else by input's base name with a trailing ".gz" stripped.
func decompressFile(input, digestMode string, verify bool) error {
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	zr, err := gzdynGzip.NewReader(f)
	if err != nil {
		return err
	}
	// Non-goal: multi-member concatenation. Decode exactly one member,
	// matching the original_source reference implementation.
	zr.Multistream(false)

	outName := zr.Header.Name
	if outName == "" {
		outName = strings.TrimSuffix(filepath.Base(input), ".gz")
	}
	out, err := os.Create(outName)
	if err != nil {
		return err
	}
	defer out.Close()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	group := stop.NewGroup()
	cancel := make(chan struct{})
	group.AddFunc(func() <-chan struct{} {
		close(cancel)
		return stop.AlreadyDone
	})
	go func() {
		if _, ok := <-sigc; ok {
			log.Notice(capnslog.BaseLogEntry("received interrupt, stopping"))
			group.Stop()
		}
	}()
	defer signal.Stop(sigc)

	n, err := copyWithCancel(out, zr, cancel)
	if err != nil && !(err == gzdynGzip.ErrChecksum && !verify) {
		return err
	}
	log.Noticef("decompressed %d bytes to %s", n, outName)

	if digestMode == "blake2b" {
		fmt.Printf("%x  %s\n", zr.StrongDigest(), outName)
	}
	return nil
}

func copyWithCancel(dst io.Writer, src io.Reader, cancel <-chan struct{}) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		select {
		case <-cancel:
			return total, dynflate.ErrUnexpectedEOF
		default:
		}
		n, rerr := src.Read(buf)
		if n > 0 {
			wn, werr := dst.Write(buf[:n])
			total += int64(wn)
			if werr != nil {
				return total, werr
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				return total, nil
			}
			return total, rerr
		}
	}
}

func exitCode(err error) int {
	var corrupt *dynflate.CorruptInputError
	switch {
	case errors.As(err, &corrupt):
		return 3
	case errors.Is(err, gzdynGzip.ErrHeader):
		return 4
	case errors.Is(err, gzdynGzip.ErrChecksum):
		return 5
	default:
		return 1
	}
}
