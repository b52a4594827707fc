package commands

import (
	"errors"

	"vendorhub/internal/pkg/errs"
	"vendorhub/internal/pkg/guard"
)

const DefaultSettleBatchSize = 100

var ErrSettleOrdersCommandIsNotConstructed = errors.New(
	"SettleOrdersCommand must be created via NewSettleOrdersCommand constructor",
)

// SettleOrdersCommand closes up to BatchSize orders whose portions have all
// reached a terminal status.
type SettleOrdersCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewSettleOrdersCommand(batchSize int) (SettleOrdersCommand, error) {
	if batchSize <= 0 {
		return SettleOrdersCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}
	return SettleOrdersCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c SettleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSettleOrdersCommandIsNotConstructed)
}

func (c SettleOrdersCommand) BatchSize() int {
	return c.batchSize
}
