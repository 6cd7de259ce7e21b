package providers

import (
	"github.com/sundries-services/sundries/internal/providers/email"
	"github.com/sundries-services/sundries/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	pdf.Module,
)
