package service

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// 對 Worker API 宣告可接受的壓縮格式
const acceptEncoding = "gzip, deflate, br, zstd"

type bodyDecoder func([]byte) ([]byte, error)

var decoders = map[string]bodyDecoder{
	"gzip":    decodeGzip,
	"x-gzip":  decodeGzip,
	"deflate": decodeZlib,
	"br":      decodeBrotli,
	"zstd":    decodeZstd,
}

// Content-Encoding 缺失時依 magic bytes 判斷；brotli 沒有 magic，只能靠標頭
var sniffers = []struct {
	magic  [][]byte
	decode bodyDecoder
}{
	{magic: [][]byte{{0x1f, 0x8b}}, decode: decodeGzip},
	{magic: [][]byte{{0x78, 0x01}, {0x78, 0x9c}, {0x78, 0xda}}, decode: decodeZlib},
	{magic: [][]byte{{0x28, 0xb5, 0x2f, 0xfd}}, decode: decodeZstd},
}

// decompressOnly 只解壓，不動內容；identity 或未知格式原樣回傳
func decompressOnly(raw []byte, h http.Header) ([]byte, error) {
	enc := strings.ToLower(strings.TrimSpace(h.Get("Content-Encoding")))
	if decode, ok := decoders[enc]; ok {
		return decode(raw)
	}
	if enc != "" {
		return raw, nil
	}
	for _, s := range sniffers {
		for _, m := range s.magic {
			if len(raw) > len(m) && bytes.HasPrefix(raw, m) {
				return s.decode(raw)
			}
		}
	}
	return raw, nil
}

func decodeGzip(b []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func decodeZlib(b []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func decodeZstd(b []byte) ([]byte, error) {
	d, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	return d.DecodeAll(b, nil)
}

func decodeBrotli(b []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(b)))
}
