// Package kvazaar provides the HEVC encoding engine backed by
// libkvazaar. The library runs its own worker pool and buffers frames
// for lookahead, so compressed units come out with a delay relative to
// submission; the handle exposes that pipeline through the narrow
// submit/drain contract.
package kvazaar

/*
#cgo pkg-config: kvazaar
#include <kvazaar.h>
#include <stdlib.h>
#include <string.h>

// The kvazaar API is a struct of function pointers; Go cannot call
// those directly, so each entry point gets a thin wrapper.

static kvz_config *api_config_alloc(const kvz_api *api) {
    return api->config_alloc();
}

static int api_config_init(const kvz_api *api, kvz_config *cfg) {
    return api->config_init(cfg);
}

static int api_config_destroy(const kvz_api *api, kvz_config *cfg) {
    return api->config_destroy(cfg);
}

static kvz_encoder *api_encoder_open(const kvz_api *api, const kvz_config *cfg) {
    return api->encoder_open(cfg);
}

static void api_encoder_close(const kvz_api *api, kvz_encoder *enc) {
    api->encoder_close(enc);
}

static kvz_picture *api_picture_alloc(const kvz_api *api, int32_t w, int32_t h) {
    return api->picture_alloc(w, h);
}

static void api_picture_free(const kvz_api *api, kvz_picture *pic) {
    api->picture_free(pic);
}

static void api_chunk_free(const kvz_api *api, kvz_data_chunk *chunk) {
    api->chunk_free(chunk);
}

static int api_encoder_headers(const kvz_api *api, kvz_encoder *enc,
                               kvz_data_chunk **data_out, uint32_t *len_out) {
    return api->encoder_headers(enc, data_out, len_out);
}

static int api_encoder_encode(const kvz_api *api, kvz_encoder *enc,
                              kvz_picture *pic_in,
                              kvz_data_chunk **data_out, uint32_t *len_out,
                              kvz_picture **pic_out, kvz_picture **src_out,
                              kvz_frame_info *info_out) {
    return api->encoder_encode(enc, pic_in, data_out, len_out,
                               pic_out, src_out, info_out);
}

static void configure(kvz_config *cfg, int w, int h, int fps_num, int fps_denom,
                      int qp, int intra_period, int threads, int bitrate) {
    cfg->width = w;
    cfg->height = h;
    cfg->framerate_num = fps_num;
    cfg->framerate_denom = fps_denom;
    cfg->qp = qp;
    cfg->intra_period = intra_period;
    if (threads > 0) {
        cfg->threads = threads;
    }
    if (bitrate > 0) {
        cfg->target_bitrate = bitrate;
    }
}

// Plane accessors. The picture planes live behind an anonymous union,
// which cgo exposes poorly, so copies happen on the C side. Chroma
// planes use half the luma stride.

static void copy_plane_in(kvz_picture *pic, int plane, const uint8_t *src,
                          int width, int height) {
    int stride = plane == 0 ? pic->stride : pic->stride / 2;
    kvz_pixel *dst = pic->data[plane];
    for (int y = 0; y < height; y++) {
        memcpy(dst + (size_t)y * stride, src + (size_t)y * width, width);
    }
}

static void copy_plane_out(uint8_t *dst, const kvz_picture *pic, int plane,
                           int width, int height) {
    int stride = plane == 0 ? pic->stride : pic->stride / 2;
    const kvz_pixel *src = pic->data[plane];
    for (int y = 0; y < height; y++) {
        memcpy(dst + (size_t)y * width, src + (size_t)y * stride, width);
    }
}

static uint32_t chunk_len(kvz_data_chunk *chunk) { return chunk->len; }
static uint8_t *chunk_data(kvz_data_chunk *chunk) { return chunk->data; }
static kvz_data_chunk *chunk_next(kvz_data_chunk *chunk) { return chunk->next; }
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/user/yuvenc/pkg/ports"
)

// Engine opens libkvazaar encoder handles.
type Engine struct {
	logger ports.Logger
}

// New creates a kvazaar engine.
func New(logger ports.Logger) *Engine {
	return &Engine{logger: logger.WithComponent("kvazaar")}
}

// Open allocates the encoder and generates the parameter set headers.
// The headers are prepended to the first compressed unit the handle
// emits, so the bitstream starts with VPS/SPS/PPS without widening the
// engine contract.
func (e *Engine) Open(cfg ports.EngineConfig) (ports.EngineHandle, error) {
	api := C.kvz_api_get(8)
	if api == nil {
		return nil, fmt.Errorf("%w: no 8-bit API", ErrOpenFailed)
	}

	kcfg := C.api_config_alloc(api)
	if kcfg == nil {
		return nil, fmt.Errorf("%w: config allocation", ErrOpenFailed)
	}
	if C.api_config_init(api, kcfg) == 0 {
		C.api_config_destroy(api, kcfg)
		return nil, fmt.Errorf("%w: config init", ErrOpenFailed)
	}

	fpsNum, fpsDenom := cfg.FPSNum, cfg.FPSDenom
	if fpsNum <= 0 {
		fpsNum, fpsDenom = 25, 1
	}
	if fpsDenom <= 0 {
		fpsDenom = 1
	}
	C.configure(kcfg,
		C.int(cfg.Width), C.int(cfg.Height),
		C.int(fpsNum), C.int(fpsDenom),
		C.int(cfg.QP), C.int(cfg.IntraPeriod),
		C.int(cfg.Threads), C.int(cfg.Bitrate))

	e.logger.Debug("Opening encoder: %dx%d, QP %d", cfg.Width, cfg.Height, cfg.QP)

	enc := C.api_encoder_open(api, kcfg)
	if enc == nil {
		C.api_config_destroy(api, kcfg)
		return nil, ErrOpenFailed
	}

	h := &handle{
		api:    api,
		cfg:    kcfg,
		enc:    enc,
		width:  cfg.Width,
		height: cfg.Height,
		logger: e.logger,
	}

	var chunk *C.kvz_data_chunk
	var length C.uint32_t
	if C.api_encoder_headers(api, enc, &chunk, &length) == 0 {
		h.Close()
		return nil, fmt.Errorf("%w: header generation", ErrOpenFailed)
	}
	h.headers = h.collectChunks(chunk)
	e.logger.Debug("Encoder headers: %d bytes", len(h.headers))

	return h, nil
}

// handle owns one encoding run's libkvazaar state.
type handle struct {
	mu sync.Mutex

	api *C.kvz_api
	cfg *C.kvz_config
	enc *C.kvz_encoder

	width  int
	height int

	// headers holds VPS/SPS/PPS until the first unit carries them.
	headers []byte

	logger ports.Logger
}

// Submit copies one raw frame into a library picture and feeds it to
// the encoder. Kvazaar keeps its own reference, so the caller's frame
// is free for reuse when Submit returns.
func (h *handle) Submit(f *ports.Frame) (*ports.CompressedUnit, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.enc == nil {
		return nil, ErrClosed
	}

	pic := C.api_picture_alloc(h.api, C.int32_t(h.width), C.int32_t(h.height))
	if pic == nil {
		return nil, ErrPictureAlloc
	}
	defer C.api_picture_free(h.api, pic)

	C.copy_plane_in(pic, 0, (*C.uint8_t)(unsafe.Pointer(&f.Planes[0][0])),
		C.int(h.width), C.int(h.height))
	C.copy_plane_in(pic, 1, (*C.uint8_t)(unsafe.Pointer(&f.Planes[1][0])),
		C.int(h.width/2), C.int(h.height/2))
	C.copy_plane_in(pic, 2, (*C.uint8_t)(unsafe.Pointer(&f.Planes[2][0])),
		C.int(h.width/2), C.int(h.height/2))
	pic.pts = C.int64_t(f.PTS)

	unit, err := h.encode(pic)
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// Drain asks the encoder for buffered output without new input. It
// reports false once the internal pipeline is empty.
func (h *handle) Drain() (*ports.CompressedUnit, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.enc == nil {
		return nil, false
	}

	unit, err := h.encode(nil)
	if err != nil {
		h.logger.Error("Encoding failed: %s", err)
		return nil, false
	}
	if unit == nil {
		return nil, false
	}
	return unit, true
}

// Close releases the encoder and its configuration. Idempotent.
func (h *handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.enc != nil {
		C.api_encoder_close(h.api, h.enc)
		h.enc = nil
	}
	if h.cfg != nil {
		C.api_config_destroy(h.api, h.cfg)
		h.cfg = nil
	}
	return nil
}

// encode runs one encoder step with pic (nil for drain) and converts
// any emitted output into a CompressedUnit with quality metrics.
func (h *handle) encode(pic *C.kvz_picture) (*ports.CompressedUnit, error) {
	var chunk *C.kvz_data_chunk
	var length C.uint32_t
	var picOut, srcOut *C.kvz_picture
	var info C.kvz_frame_info

	if C.api_encoder_encode(h.api, h.enc, pic,
		&chunk, &length, &picOut, &srcOut, &info) == 0 {
		return nil, ErrEncodeFailed
	}
	if chunk == nil {
		// Pipeline still filling, or drained dry.
		return nil, nil
	}

	payload := h.collectChunks(chunk)
	if h.headers != nil {
		payload = append(h.headers, payload...)
		h.headers = nil
	}

	unit := &ports.CompressedUnit{
		Payload: payload,
		Bits:    uint64(len(payload)) * 8,
		POC:     int32(info.poc),
		QP:      int(info.qp),
	}

	if picOut != nil && srcOut != nil {
		recon := h.capturePicture(picOut)
		src := h.capturePicture(srcOut)
		for i := range unit.PSNR {
			unit.PSNR[i] = planePSNR(src.Planes[i], recon.Planes[i])
		}
		unit.Recon = recon
	}
	if picOut != nil {
		C.api_picture_free(h.api, picOut)
	}
	if srcOut != nil {
		C.api_picture_free(h.api, srcOut)
	}

	return unit, nil
}

// collectChunks concatenates and frees a chunk list.
func (h *handle) collectChunks(chunk *C.kvz_data_chunk) []byte {
	var out []byte
	for c := chunk; c != nil; c = C.chunk_next(c) {
		if n := C.chunk_len(c); n > 0 {
			out = append(out, C.GoBytes(unsafe.Pointer(C.chunk_data(c)), C.int(n))...)
		}
	}
	C.api_chunk_free(h.api, chunk)
	return out
}

// capturePicture copies a library picture into a Go frame, dropping
// any stride padding.
func (h *handle) capturePicture(pic *C.kvz_picture) *ports.Frame {
	f := &ports.Frame{Width: h.width, Height: h.height}
	dims := [3][2]int{
		{h.width, h.height},
		{h.width / 2, h.height / 2},
		{h.width / 2, h.height / 2},
	}
	for i, d := range dims {
		buf := make([]byte, d[0]*d[1])
		C.copy_plane_out((*C.uint8_t)(unsafe.Pointer(&buf[0])), pic,
			C.int(i), C.int(d[0]), C.int(d[1]))
		f.Planes[i] = buf
	}
	return f
}

var _ ports.Engine = (*Engine)(nil)
var _ ports.EngineHandle = (*handle)(nil)
