package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/heatgrid/types"
)

func TestChannelMeshRoundTrip(t *testing.T) {
	t.Parallel()

	mesh := NewChannelMesh(2)

	sender, err := mesh.Endpoint(0)
	require.NoError(t, err)
	receiver, err := mesh.Endpoint(1)
	require.NoError(t, err)
	require.Equal(t, types.Rank(0), sender.Rank())
	require.Equal(t, types.Rank(1), receiver.Rank())

	ctx := context.Background()
	payload := []float64{1.5, -2.25, 3}

	sh, err := sender.PostSend(1, types.TagScatter, payload)
	require.NoError(t, err)
	require.NoError(t, sh.Await(ctx))

	buf := make([]float64, 3)
	rh, err := receiver.PostRecv(0, types.TagScatter, buf)
	require.NoError(t, err)
	require.NoError(t, rh.Await(ctx))
	require.Equal(t, payload, buf)
}

func TestChannelMeshSenderBufferReuse(t *testing.T) {
	t.Parallel()

	mesh := NewChannelMesh(2)
	sender, _ := mesh.Endpoint(0)
	receiver, _ := mesh.Endpoint(1)

	ctx := context.Background()

	payload := []float64{7, 7}
	sh, err := sender.PostSend(1, types.TagScatter, payload)
	require.NoError(t, err)

	// The payload is captured at post time: mutating the caller's slice
	// afterwards must not affect the transfer.
	payload[0] = -1
	payload[1] = -1

	require.NoError(t, sh.Await(ctx))

	buf := make([]float64, 2)
	rh, err := receiver.PostRecv(0, types.TagScatter, buf)
	require.NoError(t, err)
	require.NoError(t, rh.Await(ctx))
	require.Equal(t, []float64{7, 7}, buf)
}

func TestChannelMeshTagIsolation(t *testing.T) {
	t.Parallel()

	mesh := NewChannelMesh(2)
	sender, _ := mesh.Endpoint(0)
	receiver, _ := mesh.Endpoint(1)

	ctx := context.Background()

	// Two transfers on different tags: awaiting them in the opposite order
	// must still deliver each to its own buffer.
	_, err := sender.PostSend(1, types.HaloTag(types.Up), []float64{1})
	require.NoError(t, err)
	_, err = sender.PostSend(1, types.HaloTag(types.Down), []float64{2})
	require.NoError(t, err)

	bufDown := make([]float64, 1)
	hDown, err := receiver.PostRecv(0, types.HaloTag(types.Down), bufDown)
	require.NoError(t, err)
	require.NoError(t, hDown.Await(ctx))
	require.Equal(t, []float64{2}, bufDown)

	bufUp := make([]float64, 1)
	hUp, err := receiver.PostRecv(0, types.HaloTag(types.Up), bufUp)
	require.NoError(t, err)
	require.NoError(t, hUp.Await(ctx))
	require.Equal(t, []float64{1}, bufUp)
}

func TestChannelMeshFIFOPerTag(t *testing.T) {
	t.Parallel()

	mesh := NewChannelMesh(2)
	sender, _ := mesh.Endpoint(0)
	receiver, _ := mesh.Endpoint(1)

	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		h, err := sender.PostSend(1, types.TagGather, []float64{float64(i)})
		require.NoError(t, err)
		require.NoError(t, h.Await(ctx))
	}

	for i := 1; i <= 3; i++ {
		buf := make([]float64, 1)
		h, err := receiver.PostRecv(0, types.TagGather, buf)
		require.NoError(t, err)
		require.NoError(t, h.Await(ctx))
		require.Equal(t, float64(i), buf[0])
	}
}

func TestChannelMeshSizeMismatch(t *testing.T) {
	t.Parallel()

	mesh := NewChannelMesh(2)
	sender, _ := mesh.Endpoint(0)
	receiver, _ := mesh.Endpoint(1)

	ctx := context.Background()

	_, err := sender.PostSend(1, types.TagScatter, []float64{1, 2, 3})
	require.NoError(t, err)

	buf := make([]float64, 2)
	h, err := receiver.PostRecv(0, types.TagScatter, buf)
	require.NoError(t, err)
	require.ErrorIs(t, h.Await(ctx), ErrSizeMismatch)
}

func TestChannelMeshUnknownRank(t *testing.T) {
	t.Parallel()

	mesh := NewChannelMesh(2)

	_, err := mesh.Endpoint(5)
	require.ErrorIs(t, err, ErrUnknownRank)
	_, err = mesh.Endpoint(types.None)
	require.ErrorIs(t, err, ErrUnknownRank)

	ep, err := mesh.Endpoint(0)
	require.NoError(t, err)

	_, err = ep.PostSend(9, types.TagScatter, []float64{1})
	require.ErrorIs(t, err, ErrUnknownRank)
	_, err = ep.PostRecv(9, types.TagScatter, make([]float64, 1))
	require.ErrorIs(t, err, ErrUnknownRank)
}

func TestChannelMeshAwaitCancellation(t *testing.T) {
	t.Parallel()

	mesh := NewChannelMesh(2)
	receiver, _ := mesh.Endpoint(1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Nothing was ever sent: the receive must unblock via the context.
	buf := make([]float64, 1)
	h, err := receiver.PostRecv(0, types.TagScatter, buf)
	require.NoError(t, err)
	require.ErrorIs(t, h.Await(ctx), context.DeadlineExceeded)
}
