package in

import (
	"context"

	"poolwatch/internal/modules/watch/dto"
	watchin "poolwatch/internal/modules/watch/port/in"
)

type CLIHandler struct {
	usecase watchin.Usecase
}

func NewCLIHandler(usecase watchin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Run blocks until ctx is canceled and then reports what was published.
func (h CLIHandler) Run(ctx context.Context) (dto.StatsOutput, error) {
	err := h.usecase.Run(ctx)
	return h.usecase.Stats(), err
}
