package steg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zhengshuai-xiao/pngmsg/internal/compression"
	"github.com/zhengshuai-xiao/pngmsg/pkg/png"
	"github.com/zhengshuai-xiao/pngmsg/pkg/store"
)

const secret = "This is where your secret message will be!"

func newImage(t *testing.T) []byte {
	t.Helper()
	c := png.NewContainer(nil)
	for _, tc := range []struct{ tag, data string }{
		{"IHDR", "header"},
		{"IDAT", "pixels"},
		{"IEND", ""},
	} {
		typ, err := png.ParseTag(tc.tag)
		require.NoError(t, err)
		c.Append(png.NewChunk(typ, []byte(tc.data)))
	}
	return c.Bytes()
}

func TestEncodeDecodeRemove(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	st.files["cat.png"] = newImage(t)
	svc := New(st, nil)

	chunk, err := svc.Encode(ctx, EncodeRequest{Input: "cat.png", Tag: "RuSt", Message: secret})
	require.NoError(t, err)
	assert.Equal(t, uint32(2882656334), chunk.CRC())

	msg, err := svc.Decode(ctx, "cat.png", "RuSt")
	require.NoError(t, err)
	assert.Equal(t, secret, msg)

	removed, err := svc.Remove(ctx, "cat.png", "RuSt")
	require.NoError(t, err)
	assert.Equal(t, []byte(secret), removed.Data())
	assert.Equal(t, newImage(t), st.files["cat.png"])

	_, err = svc.Decode(ctx, "cat.png", "RuSt")
	assert.ErrorIs(t, err, png.ErrChunkNotFound)
}

func TestEncodeToOutput(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	original := newImage(t)
	st.files["in.png"] = original
	svc := New(st, nil)

	_, err := svc.Encode(ctx, EncodeRequest{Input: "in.png", Output: "out.png", Tag: "RuSt", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, original, st.files["in.png"], "input must be untouched")

	msg, err := svc.Decode(ctx, "out.png", "RuSt")
	require.NoError(t, err)
	assert.Equal(t, "hi", msg)
}

func TestCompressedMessages(t *testing.T) {
	for name := range compression.CompressionMethods {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c, err := compression.GetCompressorViaString(name)
			require.NoError(t, err)

			st := newMemStore()
			st.files["cat.png"] = newImage(t)
			svc := New(st, c)

			_, err = svc.Encode(ctx, EncodeRequest{Input: "cat.png", Tag: "RuSt", Message: secret})
			require.NoError(t, err)

			msg, err := svc.Decode(ctx, "cat.png", "RuSt")
			require.NoError(t, err)
			assert.Equal(t, secret, msg)

			_, err = svc.Decode(ctx, "cat.png", "NoNe")
			assert.ErrorIs(t, err, png.ErrChunkNotFound)
		})
	}
}

func TestInspect(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	st.files["cat.png"] = newImage(t)
	svc := New(st, nil)

	for _, m := range []string{"one", "two"} {
		_, err := svc.Encode(ctx, EncodeRequest{Input: "cat.png", Tag: "teXt", Message: m})
		require.NoError(t, err)
	}

	report, err := svc.Inspect(ctx, "cat.png")
	require.NoError(t, err)
	assert.Equal(t, "cat.png", report.Location)
	assert.Equal(t, len(st.files["cat.png"]), report.Size)
	require.Len(t, report.Chunks, 5)
	assert.Equal(t, "teXt", report.Chunks[4].Type)
	assert.Equal(t, 4, report.Chunks[4].Index)
	assert.Equal(t, []string{"IDAT", "IEND", "IHDR", "teXt"}, report.Tags.Elements())
	assert.Contains(t, report.Raw, "teXtone")
	assert.Contains(t, report.Raw, "teXttwo")
}

func TestServiceErrors(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	st.files["bad.png"] = []byte("not a png at all")
	st.files["cat.png"] = newImage(t)
	svc := New(st, nil)

	_, err := svc.Inspect(ctx, "missing.png")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Decode(ctx, "bad.png", "RuSt")
	assert.ErrorIs(t, err, png.ErrBadSignature)

	_, err = svc.Encode(ctx, EncodeRequest{Input: "cat.png", Tag: "R5st", Message: "x"})
	assert.ErrorIs(t, err, png.ErrFormat)
	assert.Equal(t, newImage(t), st.files["cat.png"])

	_, err = svc.Remove(ctx, "cat.png", "RuSt")
	assert.ErrorIs(t, err, png.ErrChunkNotFound)
}

func TestEncodeWriteFailure(t *testing.T) {
	ctx := context.Background()
	st := new(MockStore)
	image := newImage(t)
	writeErr := errors.New("disk full")

	st.On("Lock", ctx, "cat.png").Return(func() {}, nil)
	st.On("ReadAll", ctx, "cat.png").Return(image, nil)
	st.On("WriteAll", ctx, "cat.png", mock.AnythingOfType("[]uint8")).Return(writeErr)

	_, err := New(st, nil).Encode(ctx, EncodeRequest{Input: "cat.png", Tag: "RuSt", Message: secret})
	assert.ErrorIs(t, err, writeErr)
	st.AssertExpectations(t)
}

func TestRemoveDoesNotWriteOnMiss(t *testing.T) {
	ctx := context.Background()
	st := new(MockStore)
	st.On("Lock", ctx, "cat.png").Return(func() {}, nil)
	st.On("ReadAll", ctx, "cat.png").Return(newImage(t), nil)

	_, err := New(st, nil).Remove(ctx, "cat.png", "RuSt")
	assert.ErrorIs(t, err, png.ErrChunkNotFound)
	st.AssertExpectations(t)
	st.AssertNotCalled(t, "WriteAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveWritesBack(t *testing.T) {
	ctx := context.Background()
	st := new(MockStore)
	image := newImage(t)
	c, err := png.ParseContainer(image)
	require.NoError(t, err)
	_, err = png.Encode(c, "RuSt", []byte(secret))
	require.NoError(t, err)

	st.On("Lock", ctx, "cat.png").Return(func() {}, nil)
	st.On("ReadAll", ctx, "cat.png").Return(c.Bytes(), nil)
	st.On("WriteAll", ctx, "cat.png", image).Return(nil)

	chunk, err := New(st, nil).Remove(ctx, "cat.png", "RuSt")
	require.NoError(t, err)
	assert.Equal(t, "RuSt", chunk.Type().String())
	st.AssertExpectations(t)
}

func TestEncodeHoldsLockUntilWritten(t *testing.T) {
	ctx := context.Background()
	st := new(MockStore)
	locked := false
	unlock := func() { locked = false }

	st.On("Lock", ctx, "out.png").Return(unlock, nil).Run(func(mock.Arguments) { locked = true })
	st.On("ReadAll", ctx, "in.png").Return(newImage(t), nil).Run(func(mock.Arguments) {
		assert.True(t, locked, "read must happen under the lock")
	})
	st.On("WriteAll", ctx, "out.png", mock.AnythingOfType("[]uint8")).Return(nil).Run(func(mock.Arguments) {
		assert.True(t, locked, "write must happen under the lock")
	})

	_, err := New(st, nil).Encode(ctx, EncodeRequest{Input: "in.png", Output: "out.png", Tag: "RuSt", Message: secret})
	require.NoError(t, err)
	assert.False(t, locked, "lock must be released")
	st.AssertExpectations(t)
}

func TestLockFailureSkipsRead(t *testing.T) {
	ctx := context.Background()
	st := new(MockStore)
	lockErr := errors.New("busy")
	st.On("Lock", ctx, "cat.png").Return(nil, lockErr)

	_, err := New(st, nil).Encode(ctx, EncodeRequest{Input: "cat.png", Tag: "RuSt", Message: secret})
	assert.ErrorIs(t, err, lockErr)
	_, err = New(st, nil).Remove(ctx, "cat.png", "RuSt")
	assert.ErrorIs(t, err, lockErr)
	st.AssertNotCalled(t, "ReadAll", mock.Anything, mock.Anything)
}

func TestConcurrentEncodesKeepEveryChunk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	require.NoError(t, os.WriteFile(path, newImage(t), 0644))

	st := &slowReadStore{Store: store.NewPOSIXStore(), delay: 20 * time.Millisecond}
	svc := New(st, nil)

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tag := fmt.Sprintf("ck%cT", 'a'+i)
			_, err := svc.Encode(ctx, EncodeRequest{Input: path, Tag: tag, Message: tag})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	report, err := svc.Inspect(ctx, path)
	require.NoError(t, err)
	assert.Len(t, report.Chunks, 3+writers)
	for i := 0; i < writers; i++ {
		assert.True(t, report.Tags.Contains(fmt.Sprintf("ck%cT", 'a'+i)))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "img.png", entries[0].Name())
}

func TestRemoveLeavesNoSideFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	require.NoError(t, os.WriteFile(path, newImage(t), 0644))
	svc := New(store.NewPOSIXStore(), nil)

	_, err := svc.Encode(ctx, EncodeRequest{Input: path, Tag: "RuSt", Message: secret})
	require.NoError(t, err)
	_, err = svc.Remove(ctx, path, "RuSt")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "img.png", entries[0].Name())
}
