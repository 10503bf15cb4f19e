package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPrice_SubscriptCompression(t *testing.T) {
	assert.Equal(t, "$0.0₄456", Price(dec("0.0000456")))
	assert.Equal(t, "$0.0₃123", Price(dec("0.0001234")))
	// nine leading zeros -> multi-digit subscript count
	assert.Equal(t, "$0.0₉123", Price(dec("0.000000000123")))
}

func TestPrice_Regular(t *testing.T) {
	assert.Equal(t, "$1234.50", Price(dec("1234.5")))
	assert.Equal(t, "$1.00", Price(dec("1")))
	assert.Equal(t, "$0.00", Price(decimal.Zero))
	// sub-dollar with few leading zeros keeps plain decimals, trailing
	// zeros trimmed
	assert.Equal(t, "$0.5", Price(dec("0.5")))
	assert.Equal(t, "$0.001", Price(dec("0.001")))
	assert.Equal(t, "$0.123457", Price(dec("0.123456789")))
}

func TestMarketCap(t *testing.T) {
	assert.Equal(t, "$2.50B", MarketCap(2.5e9))
	assert.Equal(t, "$12.00M", MarketCap(12e6))
	assert.Equal(t, "$3.40K", MarketCap(3400))
	assert.Equal(t, "$999.00", MarketCap(999))
}

func TestVolume_NoBillionsBucket(t *testing.T) {
	// volume deliberately has no B suffix; billions render in M
	assert.Equal(t, "$2500.00M", Volume(2.5e9))
	assert.Equal(t, "$1.20M", Volume(1.2e6))
	assert.Equal(t, "$5.00K", Volume(5000))
	assert.Equal(t, "$42.00", Volume(42))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, "+3.20%", Percentage(3.2))
	assert.Equal(t, "-3.20%", Percentage(-3.2))
	assert.Equal(t, "0.00%", Percentage(0))
}

func TestTransactions(t *testing.T) {
	assert.Equal(t, "999", Transactions(999))
	assert.Equal(t, "1.2K", Transactions(1234))
}

func TestAge_Buckets(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "3d", Age(now.Add(-3*24*time.Hour-time.Hour)))
	assert.Equal(t, "5h", Age(now.Add(-5*time.Hour-time.Minute)))
	assert.Equal(t, "12m", Age(now.Add(-12*time.Minute-time.Second)))
	assert.Equal(t, "< 1m", Age(now.Add(-30*time.Second)))
}
