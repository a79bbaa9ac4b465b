package payments

import (
	"log"

	"github.com/shopspring/decimal"

	"lms/config"
)

// DefaultFeeRate is the platform's cut of every sale unless overridden
// through PLATFORM_FEE_RATE.
var DefaultFeeRate = decimal.NewFromFloat(0.15)

// SplitFee divides amount (smallest currency unit) into the platform fee and
// the instructor payout. The fee is amount*rate rounded half-up to a whole
// unit; the payout takes the remainder, so the two always sum back to amount
// with no cent lost to rounding.
func SplitFee(amount int64, rate decimal.Decimal) (platformFee, instructorPayout int64) {
	platformFee = decimal.NewFromInt(amount).Mul(rate).Round(0).IntPart()
	instructorPayout = amount - platformFee
	return platformFee, instructorPayout
}

// FeeRate returns the configured platform fee rate, falling back to
// DefaultFeeRate when the config value is absent or unparseable.
func FeeRate() decimal.Decimal {
	if config.AppConfig == nil || config.AppConfig.PlatformFeeRate == "" {
		return DefaultFeeRate
	}
	rate, err := decimal.NewFromString(config.AppConfig.PlatformFeeRate)
	if err != nil {
		log.Printf("[WEBHOOK] Invalid PLATFORM_FEE_RATE %q, using default: %v", config.AppConfig.PlatformFeeRate, err)
		return DefaultFeeRate
	}
	return rate
}
