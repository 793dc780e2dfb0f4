package service

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"net/http"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plainBody = `{"success":true,"users":[]}`

func gzipped(t *testing.T) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(plainBody))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zlibbed(t *testing.T) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write([]byte(plainBody))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zstded(t *testing.T) []byte {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll([]byte(plainBody), nil)
}

func TestDecompressOnly(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		body     func(t *testing.T) []byte
	}{
		{name: "gzip header", encoding: "gzip", body: gzipped},
		{name: "deflate header", encoding: "Deflate", body: zlibbed},
		{name: "zstd header", encoding: "zstd", body: zstded},
		{name: "sniff gzip", body: gzipped},
		{name: "sniff zlib", body: zlibbed},
		{name: "sniff zstd", body: zstded},
		{name: "plain", body: func(*testing.T) []byte { return []byte(plainBody) }},
		{name: "identity", encoding: "identity", body: func(*testing.T) []byte { return []byte(plainBody) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.encoding != "" {
				h.Set("Content-Encoding", tt.encoding)
			}
			got, err := decompressOnly(tt.body(t), h)
			require.NoError(t, err)
			assert.Equal(t, plainBody, string(got))
		})
	}
}

func TestDecompressOnlyCorruptGzip(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Encoding", "gzip")
	_, err := decompressOnly([]byte("not gzip"), h)
	assert.Error(t, err)
}
