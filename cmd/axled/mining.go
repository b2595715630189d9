package main

import (
	"fmt"

	axle "github.com/HyrumHendrickson/Axel/core"
	"github.com/sirupsen/logrus"
)

// mineStepBudget bounds how many nonces core.MineStep searches before
// returning control. The CLI has nothing else to interleave with, so it
// simply loops.
const mineStepBudget = 1 << 20

// mineAndAccept mines b in place and accepts it onto chain, looping
// MineStep until the proof-of-work predicate holds.
func mineAndAccept(chain *axle.Chain, b *axle.Block) error {
	for !axle.MineStep(b, mineStepBudget) {
	}
	if err := chain.AcceptBlock(b); err != nil {
		return fmt.Errorf("accept block: %w", err)
	}
	logrus.Infof("mined and accepted block height=%d hash=%s reward=%d", b.Header.Height, b.Hash, b.Reward)
	fmt.Printf("Mined and accepted block %d hash=%s\n", b.Header.Height, b.Hash)
	return nil
}

// amountToSubUnits converts a decimal coin amount to sub-units with
// round-to-nearest-integer.
func amountToSubUnits(coins float64) int64 {
	return int64(coins*float64(axle.Unit) + roundingBias(coins))
}

func roundingBias(coins float64) float64 {
	if coins < 0 {
		return -0.5
	}
	return 0.5
}
