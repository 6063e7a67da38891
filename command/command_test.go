package command

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mage-knight-digital/MageKnight-sub012/command/mock"
	"github.com/mage-knight-digital/MageKnight-sub012/rng"
	"github.com/mage-knight-digital/MageKnight-sub012/state"
)

func TestUUIDGeneratorProducesDistinctIDs(t *testing.T) {
	gen := UUIDGenerator{}
	a := gen.NewID()
	b := gen.NewID()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}

func TestCommandUndoRestoresSnapshot(t *testing.T) {
	before := state.GameState{RNG: rng.New(1), Round: 1}
	cmd := New(UUIDGenerator{}, KindAdvanceCombatPhase, "p1", before)

	require.Equal(t, KindAdvanceCombatPhase, cmd.Kind())
	require.Equal(t, "p1", cmd.PlayerID())

	mutated := before
	mutated.Round = 99
	restored, events := cmd.Undo(mutated)
	require.Equal(t, before, restored)
	require.Empty(t, events)
}

func TestMockIDGeneratorRecordsExpectedCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mock.NewMockIDGenerator(ctrl)
	gen.EXPECT().NewID().Return("fixed-id")

	cmd := New(gen, KindEndCombat, "p1", state.GameState{})
	require.Equal(t, "fixed-id", cmd.ID)
}
