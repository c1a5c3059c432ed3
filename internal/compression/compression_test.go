package compression

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io/fs"
	"strings"
	"testing"
)

const testLimit = 1 << 20

type member struct {
	data []byte
	mode int64
}

func buildTarGz(t *testing.T, members map[string]member) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gzw)

	for name, m := range members {
		header := &tar.Header{
			Name:     name,
			Mode:     m.mode,
			Size:     int64(len(m.data)),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("WriteHeader(%s) error = %v", name, err)
		}
		if _, err := tw.Write(m.data); err != nil {
			t.Fatalf("Write(%s) error = %v", name, err)
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("tar Close() error = %v", err)
	}
	if err := gzw.Close(); err != nil {
		t.Fatalf("gzip Close() error = %v", err)
	}
	return buf.Bytes()
}

func buildZip(t *testing.T, members map[string]member) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for name, m := range members {
		header := &zip.FileHeader{Name: name}
		header.SetMode(fs.FileMode(m.mode))
		w, err := zw.CreateHeader(header)
		if err != nil {
			t.Fatalf("CreateHeader(%s) error = %v", name, err)
		}
		if _, err := w.Write(m.data); err != nil {
			t.Fatalf("Write(%s) error = %v", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestExtractBinaryBarePassthrough(t *testing.T) {
	data := []byte("raw provider binary")

	got, name, err := ExtractBinary("irodori-provider-x_linux_amd64", data, "irodori-provider-x", testLimit)
	if err != nil {
		t.Fatalf("ExtractBinary() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("ExtractBinary() altered a bare binary")
	}
	if name != "irodori-provider-x_linux_amd64" {
		t.Errorf("ExtractBinary() name = %q, want asset name", name)
	}
}

func TestExtractBinaryGz(t *testing.T) {
	want := []byte("compressed provider")
	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	if _, err := gzw.Write(want); err != nil {
		t.Fatalf("gzip Write() error = %v", err)
	}
	if err := gzw.Close(); err != nil {
		t.Fatalf("gzip Close() error = %v", err)
	}

	got, name, err := ExtractBinary("provider.gz", buf.Bytes(), "", testLimit)
	if err != nil {
		t.Fatalf("ExtractBinary() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ExtractBinary() = %q, want %q", got, want)
	}
	if name != "provider" {
		t.Errorf("ExtractBinary() name = %q, want provider", name)
	}
}

func TestExtractBinaryTarGzPicksWanted(t *testing.T) {
	want := []byte("the actual binary")
	data := buildTarGz(t, map[string]member{
		"README.md":            {data: []byte("docs"), mode: 0o644},
		"irodori-provider-wob": {data: want, mode: 0o755},
	})

	got, name, err := ExtractBinary("irodori-provider-wob_0.3.1_linux_amd64.tar.gz", data, "irodori-provider-wob", testLimit)
	if err != nil {
		t.Fatalf("ExtractBinary() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ExtractBinary() = %q, want the binary member", got)
	}
	if name != "irodori-provider-wob" {
		t.Errorf("ExtractBinary() name = %q, want irodori-provider-wob", name)
	}
}

func TestExtractBinaryTarGzNestedMember(t *testing.T) {
	want := []byte("nested binary")
	data := buildTarGz(t, map[string]member{
		"dist/LICENCE":                   {data: []byte("mit"), mode: 0o644},
		"dist/irodori-provider-nested":   {data: want, mode: 0o755},
		"dist/irodori-provider-nested.d": {data: []byte("conf"), mode: 0o644},
	})

	got, _, err := ExtractBinary("release.tar.gz", data, "irodori-provider-nested", testLimit)
	if err != nil {
		t.Fatalf("ExtractBinary() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ExtractBinary() = %q, want the nested member", got)
	}
}

func TestExtractBinaryTarGzFallsBackToExecutable(t *testing.T) {
	want := []byte("exec me")
	data := buildTarGz(t, map[string]member{
		"README.md": {data: []byte("docs"), mode: 0o644},
		"run-me":    {data: want, mode: 0o755},
	})

	got, name, err := ExtractBinary("something_1.0_linux_amd64.tar.gz", data, "no-such-member", testLimit)
	if err != nil {
		t.Fatalf("ExtractBinary() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ExtractBinary() = %q, want the executable member", got)
	}
	if name != "run-me" {
		t.Errorf("ExtractBinary() name = %q, want run-me", name)
	}
}

func TestExtractBinaryTarGzAmbiguous(t *testing.T) {
	data := buildTarGz(t, map[string]member{
		"a.txt": {data: []byte("a"), mode: 0o644},
		"b.txt": {data: []byte("b"), mode: 0o644},
	})

	_, _, err := ExtractBinary("bundle.tar.gz", data, "", testLimit)
	if err == nil {
		t.Fatal("ExtractBinary() expected error for ambiguous archive, got nil")
	}
	if !strings.Contains(err.Error(), "none match") {
		t.Errorf("ExtractBinary() error = %v, want mention of unmatched members", err)
	}
}

func TestExtractBinaryTarGzSingleFile(t *testing.T) {
	want := []byte("only file")
	data := buildTarGz(t, map[string]member{
		"whatever": {data: want, mode: 0o644},
	})

	got, _, err := ExtractBinary("bundle.tar.gz", data, "", testLimit)
	if err != nil {
		t.Fatalf("ExtractBinary() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ExtractBinary() = %q, want the sole member", got)
	}
}

func TestExtractBinaryTarGzEmpty(t *testing.T) {
	data := buildTarGz(t, nil)

	_, _, err := ExtractBinary("empty.tar.gz", data, "", testLimit)
	if err == nil {
		t.Fatal("ExtractBinary() expected error for empty archive, got nil")
	}
}

func TestExtractBinaryZip(t *testing.T) {
	want := []byte("zipped binary")
	data := buildZip(t, map[string]member{
		"README.md":                 {data: []byte("docs"), mode: 0o644},
		"dist/irodori-provider-wob": {data: want, mode: 0o755},
	})

	got, name, err := ExtractBinary("irodori-provider-wob_0.3.1_windows_amd64.zip", data, "irodori-provider-wob", testLimit)
	if err != nil {
		t.Fatalf("ExtractBinary() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ExtractBinary() = %q, want the binary member", got)
	}
	if name != "irodori-provider-wob" {
		t.Errorf("ExtractBinary() name = %q, want base name of member", name)
	}
}

func TestExtractBinaryLimit(t *testing.T) {
	data := buildTarGz(t, map[string]member{
		"big": {data: bytes.Repeat([]byte("x"), 64), mode: 0o755},
	})

	if _, _, err := ExtractBinary("big.tar.gz", data, "big", 16); err == nil {
		t.Error("ExtractBinary() expected error when member exceeds limit, got nil")
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"irodori-provider-wob_0.3.1_linux_amd64.tar.gz", "irodori-provider-wob"},
		{"provider_1.0.0_darwin_arm64.zip", "provider"},
		{"plain-binary", "plain-binary"},
		{"tool.tbz2", "tool"},
		{"provider.gz", "provider"},
	}

	for _, tt := range tests {
		if got := BaseName(tt.in); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
