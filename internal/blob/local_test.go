package blob

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/recruit-board/internal/testutil"
)

func newTestLocalStore(t *testing.T, now time.Time) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(Config{
		BasePath:   t.TempDir(),
		BaseURL:    "http://localhost:8080/",
		SigningKey: "0123456789abcdef0123456789abcdef",
	})
	require.NoError(t, err)
	return s.WithClock(func() time.Time { return now })
}

func TestLocalStore_PutOpenDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStore(t, testutil.TestTime())
	pdf := testutil.MinimalPDF()

	id, err := s.Put(ctx, bytes.NewReader(pdf), int64(len(pdf)), "application/pdf")
	require.NoError(t, err)
	assert.True(t, ValidKey(id))
	assert.True(t, strings.HasSuffix(id, ".pdf"))

	ok, err := s.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Open(ctx, id)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, pdf, got)

	keys, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, keys)

	require.NoError(t, s.Delete(ctx, id))
	ok, err = s.Exists(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting again is not an error
	require.NoError(t, s.Delete(ctx, id))

	_, err = s.Open(ctx, id)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStore_PutRejectsNonPDF(t *testing.T) {
	s := newTestLocalStore(t, testutil.TestTime())

	_, err := s.Put(context.Background(), strings.NewReader("hello"), 5, "text/plain")
	assert.ErrorIs(t, err, ErrUnsupportedContentType)

	keys, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestLocalStore_PutAcceptsContentTypeParams(t *testing.T) {
	s := newTestLocalStore(t, testutil.TestTime())
	pdf := testutil.MinimalPDF()

	_, err := s.Put(context.Background(), bytes.NewReader(pdf), -1, "Application/PDF; charset=binary")
	assert.NoError(t, err)
}

func TestLocalStore_PresignAndVerify(t *testing.T) {
	now := testutil.TestTime()
	s := newTestLocalStore(t, now)
	id := NewKey()

	link, err := s.Presign(context.Background(), id, 0)
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", u.Host)
	assert.Equal(t, FilesPath+id, u.Path)

	q := u.Query()
	assert.Equal(t, "1704114000", q.Get("expires"))
	require.NoError(t, s.VerifyLink(id, q.Get("expires"), q.Get("signature")))

	t.Run("tampered expiry", func(t *testing.T) {
		err := s.VerifyLink(id, "1999999999", q.Get("signature"))
		assert.ErrorIs(t, err, ErrLinkInvalid)
	})

	t.Run("other key", func(t *testing.T) {
		err := s.VerifyLink(NewKey(), q.Get("expires"), q.Get("signature"))
		assert.ErrorIs(t, err, ErrLinkInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		later := s.WithClock(func() time.Time { return now.Add(2 * time.Hour) })
		assert.ErrorIs(t, later.VerifyLink(id, q.Get("expires"), q.Get("signature")), ErrLinkExpired)
	})
}

func TestLocalStore_PresignRejectsNegativeTTL(t *testing.T) {
	s := newTestLocalStore(t, testutil.TestTime())
	_, err := s.Presign(context.Background(), NewKey(), -time.Second)
	assert.ErrorIs(t, err, ErrInvalidTTL)
}

func TestLocalStore_RejectsTraversalKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStore(t, testutil.TestTime())

	ok, err := s.Exists(ctx, "../etc/passwd")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Open(ctx, "../../secret.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStore_Health(t *testing.T) {
	s := newTestLocalStore(t, testutil.TestTime())
	assert.NoError(t, s.Health(context.Background()))
}
