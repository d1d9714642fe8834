package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeScope struct{ open bool }

func (f *fakeScope) Open() bool { return f.open }

func TestWithAndFrom(t *testing.T) {
	_, ok := From(context.Background())
	assert.False(t, ok)

	s := &fakeScope{open: true}
	ctx := With(context.Background(), s)
	got, ok := From(ctx)
	assert.True(t, ok)
	assert.Same(t, s, got)
}

func TestWithNilScope(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, With(ctx, nil))
}
