package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionAllowedForwardChain(t *testing.T) {
	chain := []string{
		TxPendingAssignment,
		TxAssignedToVendor,
		TxVendorProcessing,
		TxShipped,
		TxDelivered,
		TxCompleted,
	}

	for i := 0; i < len(chain)-1; i++ {
		assert.True(t, TransitionAllowed(chain[i], chain[i+1]),
			"expected %s -> %s to be allowed", chain[i], chain[i+1])
	}

	// Skipping a step is never allowed.
	for i := 0; i < len(chain)-2; i++ {
		assert.False(t, TransitionAllowed(chain[i], chain[i+2]),
			"expected %s -> %s to be rejected", chain[i], chain[i+2])
	}
}

func TestTransitionAllowedNoSelfLoops(t *testing.T) {
	for status := range txTransitions {
		assert.False(t, TransitionAllowed(status, status),
			"expected self-loop on %s to be rejected", status)
	}
}

func TestTransitionAllowedTerminals(t *testing.T) {
	for _, terminal := range []string{TxCompleted, TxCancelled, TxIssueReported} {
		for status := range txTransitions {
			assert.False(t, TransitionAllowed(terminal, status),
				"expected no exit from %s", terminal)
		}
	}
}

func TestTransitionAllowedSideBranches(t *testing.T) {
	nonTerminal := []string{
		TxPendingAssignment,
		TxAssignedToVendor,
		TxVendorProcessing,
		TxShipped,
		TxDelivered,
	}

	for _, status := range nonTerminal {
		assert.True(t, TransitionAllowed(status, TxCancelled),
			"expected %s -> cancelled", status)
		assert.True(t, TransitionAllowed(status, TxIssueReported),
			"expected %s -> issue_reported", status)
	}
}

func TestTransitionAllowedNoBackwardMoves(t *testing.T) {
	assert.False(t, TransitionAllowed(TxShipped, TxVendorProcessing))
	assert.False(t, TransitionAllowed(TxDelivered, TxShipped))
	assert.False(t, TransitionAllowed(TxAssignedToVendor, TxPendingAssignment))
}

func TestTransitionAllowedUnknownStatus(t *testing.T) {
	assert.False(t, TransitionAllowed("bogus", TxCancelled))
	assert.False(t, TransitionAllowed(TxPendingAssignment, "bogus"))
}

func TestValidTransactionStatus(t *testing.T) {
	for status := range txTransitions {
		assert.True(t, ValidTransactionStatus(status))
	}
	assert.False(t, ValidTransactionStatus(""))
	assert.False(t, ValidTransactionStatus("in_transit"))
}
