package in

import (
	"context"

	"poolwatch/internal/modules/auth/dto"
	"poolwatch/internal/platform/observable"
)

// Usecase is the session lifecycle. Login, Register and Refresh never return
// errors: the outcome is the boolean plus the message left in State().
type Usecase interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, input dto.LoginInput) bool
	Register(ctx context.Context, input dto.RegisterInput) bool
	Refresh(ctx context.Context) bool
	Logout(ctx context.Context)
	ClearError()
	State() observable.Readable[dto.SessionOutput]
	TokenInfo(ctx context.Context) (dto.TokenInfoOutput, error)
}
