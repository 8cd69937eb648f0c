// Copyright 2016 CoreOS Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package progressutil reports the progress of one or more concurrent
// io.Copy operations, for CLIs that move large streams (like a gzdyn
// decompress of a multi-gigabyte member) and want to show the operator
// something other than a silent hang.
package progressutil

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// ErrAlreadyStarted is returned by AddCopy or PrintAndWait once
// PrintAndWait has already begun; copies must be registered up front.
var ErrAlreadyStarted = errors.New("progressutil: already started")

type copyJob struct {
	label  string
	total  int64
	copied int64
	done   chan error
}

// CopyProgressPrinter runs one or more io.Copy operations and periodically
// reports how far each has gotten.
type CopyProgressPrinter struct {
	mu      sync.Mutex
	started bool
	jobs    []*copyJob
}

func NewCopyProgressPrinter() *CopyProgressPrinter {
	return &CopyProgressPrinter{}
}

type countingWriter struct {
	w   io.Writer
	job *copyJob
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	atomic.AddInt64(&c.job.copied, int64(n))
	return n, err
}

// AddCopy registers an io.Copy from r to w under the given label, to start
// once PrintAndWait is called. total is the expected number of bytes, used
// only for the printed fraction; it may be 0 if unknown.
func (p *CopyProgressPrinter) AddCopy(r io.Reader, label string, total int64, w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return ErrAlreadyStarted
	}
	p.jobs = append(p.jobs, &copyJob{label: label, total: total, done: make(chan error, 1)})
	job := p.jobs[len(p.jobs)-1]
	go func() {
		_, err := io.Copy(&countingWriter{w: w, job: job}, r)
		job.done <- err
	}()
	return nil
}

// PrintAndWait writes a progress line per registered copy to out every
// interval, until every copy finishes, one fails, or cancel fires. It
// returns the first copy error encountered, or nil.
func (p *CopyProgressPrinter) PrintAndWait(out io.Writer, interval time.Duration, cancel <-chan struct{}) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	p.started = true
	jobs := append([]*copyJob(nil), p.jobs...)
	p.mu.Unlock()

	results := make(chan error, len(jobs))
	for _, j := range jobs {
		go func(j *copyJob) { results <- <-j.done }(j)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	remaining := len(jobs)
	for remaining > 0 {
		select {
		case <-ticker.C:
			printProgress(out, jobs)
		case err := <-results:
			remaining--
			if err != nil {
				return err
			}
		case <-cancel:
			return nil
		}
	}
	printProgress(out, jobs)
	return nil
}

func printProgress(out io.Writer, jobs []*copyJob) {
	for _, j := range jobs {
		copied := atomic.LoadInt64(&j.copied)
		fmt.Fprintf(out, "%s: %s / %s\n", j.label, ByteUnitStr(copied), ByteUnitStr(j.total))
	}
}

var byteUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

// ByteUnitStr formats n bytes using the largest binary unit that keeps the
// mantissa at least 1, e.g. 1536 -> "1.50 KiB".
func ByteUnitStr(n int64) string {
	f := float64(n)
	unit := 0
	for f >= 1024 && unit < len(byteUnits)-1 {
		f /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", n, byteUnits[unit])
	}
	return fmt.Sprintf("%.2f %s", f, byteUnits[unit])
}
