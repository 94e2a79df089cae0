// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"
)

type nopDecoder struct{ name string }

func (nopDecoder) Decode(io.Reader) (Source, error) { return nil, nil }

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("WAV", nopDecoder{name: "wav"})

	for _, key := range []string{"wav", "WAV", "Wav"} {
		d, ok := reg.Get(key)
		if !ok {
			t.Fatalf("Get(%q) not found", key)
		}
		if d.(nopDecoder).name != "wav" {
			t.Errorf("Get(%q) = %v, want wav decoder", key, d)
		}
	}

	if _, ok := reg.Get("mp3"); ok {
		t.Error("Get(mp3) found a decoder that was never registered")
	}
}

func TestRegistry_ReplaceExisting(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("pcm", nopDecoder{name: "first"})
	reg.Register("PCM", nopDecoder{name: "second"})

	d, _ := reg.Get("pcm")
	if d.(nopDecoder).name != "second" {
		t.Errorf("Get(pcm) = %v, want the second registration", d)
	}
	if got := reg.Formats(); !slices.Equal(got, []string{"pcm"}) {
		t.Errorf("Formats() = %v, want [pcm]", got)
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("ogg", nopDecoder{name: "ogg"})

	tests := []struct {
		path    string
		wantErr bool
	}{
		{path: "music/theme.ogg"},
		{path: "THEME.OGG"},
		{path: "archive.tar.ogg"},
		{path: "theme.flac", wantErr: true},
		{path: "no-extension", wantErr: true},
		{path: "ogg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			_, err := reg.ForPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("ForPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ForPath(%q) error = %v", tt.path, err)
			}
		})
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if got := reg.Formats(); len(got) != 0 {
		t.Errorf("Formats() on empty registry = %v", got)
	}

	for _, k := range []string{"wav", "aiff", "Mp3"} {
		reg.Register(k, nopDecoder{})
	}

	want := []string{"aiff", "mp3", "wav"}
	if got := reg.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := string(rune('a' + i))
			reg.Register(key, nopDecoder{name: key})
			if _, ok := reg.Get(key); !ok {
				t.Errorf("Get(%q) missing right after Register", key)
			}
			_ = reg.Formats()
		}()
	}
	wg.Wait()

	if n := len(reg.Formats()); n != 16 {
		t.Errorf("len(Formats()) = %d, want 16", n)
	}
}
