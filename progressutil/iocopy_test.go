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

package progressutil

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestCopyOneCompletes(t *testing.T) {
	cpp := NewCopyProgressPrinter()

	sampleData := bytes.Repeat([]byte("x"), 4096)
	src := bytes.NewReader(sampleData)
	var dst bytes.Buffer

	if err := cpp.AddCopy(src, "download", int64(len(sampleData)), &dst); err != nil {
		t.Fatalf("AddCopy: %v", err)
	}

	var printed bytes.Buffer
	if err := cpp.PrintAndWait(&printed, time.Millisecond, nil); err != nil {
		t.Fatalf("PrintAndWait: %v", err)
	}

	if !bytes.Equal(dst.Bytes(), sampleData) {
		t.Fatal("copied bytes don't match source")
	}
	if !strings.Contains(printed.String(), "download:") {
		t.Fatalf("expected progress output to mention the label, got %q", printed.String())
	}
}

func TestCopyAlreadyStarted(t *testing.T) {
	cpp := NewCopyProgressPrinter()
	src := bytes.NewReader(bytes.Repeat([]byte("y"), 64))
	var dst bytes.Buffer

	if err := cpp.AddCopy(src, "download", 64, &dst); err != nil {
		t.Fatalf("AddCopy: %v", err)
	}

	cancel := make(chan struct{})
	doneChan := make(chan error, 1)
	go func() {
		doneChan <- cpp.PrintAndWait(&bytes.Buffer{}, time.Second, cancel)
	}()

	time.Sleep(20 * time.Millisecond)

	if err := cpp.AddCopy(src, "download2", 64, &dst); err != ErrAlreadyStarted {
		t.Fatalf("AddCopy after start = %v, want ErrAlreadyStarted", err)
	}
	if err := cpp.PrintAndWait(&bytes.Buffer{}, time.Second, cancel); err != ErrAlreadyStarted {
		t.Fatalf("PrintAndWait twice = %v, want ErrAlreadyStarted", err)
	}

	close(cancel)
	<-doneChan
}

func TestByteUnitStr(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.50 KiB"},
		{1 << 20, "1.00 MiB"},
	}
	for _, c := range cases {
		if got := ByteUnitStr(c.in); got != c.want {
			t.Errorf("ByteUnitStr(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}
