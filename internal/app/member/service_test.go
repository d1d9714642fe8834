package member

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/YelzhanWeb/ordersystem/internal/adapter/logger"
	"github.com/YelzhanWeb/ordersystem/internal/adapter/memory"
	"github.com/YelzhanWeb/ordersystem/internal/adapter/metrics"
	"github.com/YelzhanWeb/ordersystem/internal/domain"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces"
	"github.com/YelzhanWeb/ordersystem/internal/interfaces/mocks"
)

type testEnv struct {
	svc       *Service
	publisher *mocks.MockMessagePublisher
	metrics   *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockMessagePublisher(ctrl)
	m := metrics.New(prometheus.NewRegistry())
	store := memory.New(m)

	return &testEnv{
		svc:       NewService(store, memory.NewMemberRepository(store), publisher, m, logger.Discard()),
		publisher: publisher,
		metrics:   m,
	}
}

func TestJoinThenFindReturnsSubmittedName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.publisher.EXPECT().
		PublishMemberJoined(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg interfaces.MemberJoinedMessage) error {
			assert.EqualValues(t, 1, msg.MemberID)
			assert.Equal(t, "Alice", msg.Name)
			return nil
		})

	id, err := env.svc.Join(ctx, interfaces.JoinMemberCommand{Name: "Alice"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, id)

	got, err := env.svc.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.MembersJoined))
}

func TestJoinRejectsBlankName(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Join(context.Background(), interfaces.JoinMemberCommand{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestJoinSurvivesPublishFailure(t *testing.T) {
	env := newTestEnv(t)
	env.publisher.EXPECT().
		PublishMemberJoined(gomock.Any(), gomock.Any()).
		Return(errors.New("broker down"))

	id, err := env.svc.Join(context.Background(), interfaces.JoinMemberCommand{Name: "Bob"})
	require.NoError(t, err)

	got, err := env.svc.FindOne(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)
}

func TestUpdateKeepsIDAndReplacesName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.publisher.EXPECT().PublishMemberJoined(gomock.Any(), gomock.Any()).Return(nil)

	id, err := env.svc.Join(ctx, interfaces.JoinMemberCommand{Name: "Alice"})
	require.NoError(t, err)

	updated, err := env.svc.Update(ctx, id, "Alicia")
	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)
	assert.Equal(t, "Alicia", updated.Name)

	got, err := env.svc.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)
}

func TestUpdateUnknownMember(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Update(context.Background(), 99, "Nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindMembersInIDOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.publisher.EXPECT().PublishMemberJoined(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	for _, name := range []string{"a", "b", "c"} {
		_, err := env.svc.Join(ctx, interfaces.JoinMemberCommand{Name: name})
		require.NoError(t, err)
	}

	members, err := env.svc.FindMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 3)
	for i, name := range []string{"a", "b", "c"} {
		assert.Equal(t, name, members[i].Name)
	}
}
