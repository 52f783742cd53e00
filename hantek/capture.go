package hantek

import (
	"context"
	"errors"
	"io"
	"syscall"

	"github.com/tinylaboratory/hantek6022/wire"
)

const captureChunkSize = 64

// Capture validates channels and reads numSamples*numActive bytes in
// captureChunkSize-byte chunks, sending the SCOPE_CAPTURE/START_RECV
// trigger command before each read. numActive
// is the count of distinct channels in {1, 2} the request touches, not
// len(channels): a request like Capture([]int{1, 1}, n) names one
// channel twice and must not over-allocate as if it named two.
//
// Looping on the full byte count (numSamples*numActive), rather than
// numSamples alone, matters because looping on numSamples alone
// silently returns half the expected bytes whenever two channels are
// requested.
func (d *Driver) Capture(channels []int, numSamples int) ([]byte, error) {
	for _, ch := range channels {
		validateChannel(ch)
	}
	numActive := distinctChannelCount(channels)
	total := numSamples * numActive
	buf := make([]byte, total)

	half := uint16(total / 2)

	count := 0
	for count < total {
		err := d.send("capture", wire.FuncScopeCapture, wire.CmdStartRecv, func(b *wire.Builder) *wire.Builder {
			return b.SetWords(half, half)
		})
		if err != nil {
			return nil, err
		}
		length := captureChunkSize
		if remaining := total - count; remaining < length {
			length = remaining
		}
		n, err := d.xport.Read(d.readEndpoint, buf[count:count+length])
		if err != nil {
			return nil, wrapUsbErr("capture read", err)
		}
		if n == 0 {
			return nil, wrapUsbErr("capture read", errors.New("read returned 0 bytes"))
		}
		count += n
	}
	return buf, nil
}

// distinctChannelCount returns how many of channel 1 and channel 2
// appear anywhere in channels, ignoring duplicates and order.
func distinctChannelCount(channels []int) int {
	var has1, has2 bool
	for _, ch := range channels {
		switch ch {
		case 1:
			has1 = true
		case 2:
			has2 = true
		}
	}
	n := 0
	if has1 {
		n++
	}
	if has2 {
		n++
	}
	return n
}

// StreamCapture calls Capture repeatedly, writing each chunk to w. A
// write error that is io.ErrClosedPipe or syscall.EPIPE (the caller
// closed its end of the pipe, the common Unix pipeline pattern) ends
// the stream with a nil error; any other write error is returned
// wrapped. ctx
// cancellation also ends the stream cleanly.
func (d *Driver) StreamCapture(ctx context.Context, channels []int, chunkSamples int, w io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		chunk, err := d.Capture(channels, chunkSamples)
		if err != nil {
			return err
		}
		if _, err := w.Write(chunk); err != nil {
			if errors.Is(err, io.ErrClosedPipe) || errors.Is(err, syscall.EPIPE) {
				return nil
			}
			return wrapUsbErr("stream capture write", err)
		}
	}
}
