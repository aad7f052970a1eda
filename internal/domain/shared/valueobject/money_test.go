package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), NGN)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, NGN, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestNewMoneyFromString(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"integer", "5000", false},
		{"two decimal places", "4999.99", false},
		{"negative", "-25.50", false},
		{"garbage", "not-a-number", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.amount, NGN)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.amount, m.Amount().String())
		})
	}
}

func TestMoney_Add(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyNGN(decimal.NewFromInt(4000))
		b := NewMoneyNGN(decimal.NewFromInt(6000))
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(10000)))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyNGN(decimal.NewFromInt(10))
		b, _ := NewMoney(decimal.NewFromInt(10), USD)
		_, err := a.Add(b)
		assert.Error(t, err)
	})

	t.Run("exact decimal accumulation", func(t *testing.T) {
		// 0.1 added ten times must be exactly 1, which float64 cannot do
		sum := ZeroNGN()
		tenth, err := NewMoneyNGNFromString("0.10")
		require.NoError(t, err)
		for range 10 {
			sum = sum.MustAdd(tenth)
		}
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(1)))
	})
}

func TestMoney_Subtract(t *testing.T) {
	a := NewMoneyNGN(decimal.NewFromInt(10000))
	b := NewMoneyNGN(decimal.NewFromInt(4000))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(6000)))

	neg, err := b.Subtract(a)
	require.NoError(t, err)
	assert.True(t, neg.IsNegative())
}

func TestMoney_Comparisons(t *testing.T) {
	small := NewMoneyNGN(decimal.NewFromInt(5))
	big := NewMoneyNGN(decimal.NewFromInt(50))

	lt, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, lt)

	gte, err := big.GreaterThanOrEqual(big)
	require.NoError(t, err)
	assert.True(t, gte)

	other, _ := NewMoney(decimal.NewFromInt(5), GBP)
	_, err = small.LessThan(other)
	assert.Error(t, err)
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroNGN().IsZero())
	assert.True(t, NewMoneyNGN(decimal.NewFromInt(1)).IsPositive())
	assert.True(t, NewMoneyNGN(decimal.NewFromInt(-1)).IsNegative())
	assert.True(t, NewMoneyNGN(decimal.NewFromInt(-3)).Abs().IsPositive())
	assert.True(t, NewMoneyNGN(decimal.NewFromInt(3)).Negate().IsNegative())
}

func TestMoney_String(t *testing.T) {
	m, err := NewMoneyNGNFromString("1234.5")
	require.NoError(t, err)
	assert.Equal(t, "1234.50 NGN", m.String())
	assert.Equal(t, "1234.500", m.StringFixed(3))
}

func TestMoney_JSON(t *testing.T) {
	m, err := NewMoneyNGNFromString("99.99")
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"99.99","currency":"NGN"}`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, m.Equals(back))
}

func TestMoney_Scan(t *testing.T) {
	t.Run("scans string", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("250.75"))
		assert.Equal(t, "250.75", m.Amount().String())
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans bytes", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan([]byte("10")))
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(10)))
	})

	t.Run("nil becomes zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(42))
	})
}
