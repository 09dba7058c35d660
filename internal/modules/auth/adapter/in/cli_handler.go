package in

import (
	"context"

	authdto "poolwatch/internal/modules/auth/dto"
	authin "poolwatch/internal/modules/auth/port/in"
	"poolwatch/internal/platform/observable"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Initialize(ctx context.Context) authdto.SessionOutput {
	h.usecase.Initialize(ctx)
	return h.usecase.State().Get()
}

func (h CLIHandler) Login(ctx context.Context, username, password string) (authdto.SessionOutput, bool) {
	ok := h.usecase.Login(ctx, authdto.LoginInput{Username: username, Password: password})
	return h.usecase.State().Get(), ok
}

func (h CLIHandler) Register(ctx context.Context, email, username, password string) (authdto.SessionOutput, bool) {
	ok := h.usecase.Register(ctx, authdto.RegisterInput{Email: email, Username: username, Password: password})
	return h.usecase.State().Get(), ok
}

func (h CLIHandler) Refresh(ctx context.Context) (authdto.SessionOutput, bool) {
	ok := h.usecase.Refresh(ctx)
	return h.usecase.State().Get(), ok
}

func (h CLIHandler) Logout(ctx context.Context) authdto.SessionOutput {
	h.usecase.Logout(ctx)
	return h.usecase.State().Get()
}

func (h CLIHandler) ClearError() {
	h.usecase.ClearError()
}

func (h CLIHandler) TokenInfo(ctx context.Context) (authdto.TokenInfoOutput, error) {
	return h.usecase.TokenInfo(ctx)
}

func (h CLIHandler) State() observable.Readable[authdto.SessionOutput] {
	return h.usecase.State()
}
