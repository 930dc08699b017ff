package port

import (
	"context"

	"github.com/nikolayk812/freshbasket/internal/domain"
)

type AdminRepository interface {
	GetAdminByUsername(ctx context.Context, username string) (domain.Admin, error)
	CreateAdmin(ctx context.Context, admin domain.Admin) (domain.Admin, error)
}
