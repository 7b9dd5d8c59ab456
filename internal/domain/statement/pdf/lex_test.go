package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchDateLine(t *testing.T) {
	t.Run("matches DD Mon YY prefix", func(t *testing.T) {
		d, ok := matchDateLine("02 Dec 25 CR SALARY 1000.00 1000.00")
		require.True(t, ok)
		assert.Equal(t, "02", d.Day)
		assert.Equal(t, "Dec", d.Month)
		assert.Equal(t, "25", d.Year)
		assert.Equal(t, "CR SALARY 1000.00 1000.00", d.Remainder)
	})

	t.Run("canonicalizes month case", func(t *testing.T) {
		d, ok := matchDateLine("02 dec 25 DD RENT 500.00")
		require.True(t, ok)
		assert.Equal(t, "Dec", d.Month)

		d, ok = matchDateLine("02 DEC 25 DD RENT 500.00")
		require.True(t, ok)
		assert.Equal(t, "Dec", d.Month)
	})

	t.Run("tolerates padded separators", func(t *testing.T) {
		d, ok := matchDateLine("02  Dec  25  VIS TESCO 12.34")
		require.True(t, ok)
		assert.Equal(t, "VIS TESCO 12.34", d.Remainder)
	})

	t.Run("no match on non-conforming lines", func(t *testing.T) {
		for _, line := range []string{
			"",
			"VIS TESCO 12.34 987.66",
			"2 Dec 25 too-short day",
			"02 December 25 long month",
			"02 Dec 2025 four-digit year",
			"BALANCE CARRIED FORWARD 1,234.56",
		} {
			_, ok := matchDateLine(line)
			assert.False(t, ok, "line %q should not match", line)
		}
	})
}

func TestFormatDate(t *testing.T) {
	t.Run("zero-padded DD/MM/YYYY with 2000+YY expansion", func(t *testing.T) {
		got, err := formatDate(dateLine{Day: "02", Month: "Dec", Year: "25"})
		require.NoError(t, err)
		assert.Equal(t, "02/12/2025", got)

		got, err = formatDate(dateLine{Day: "09", Month: "Jan", Year: "07"})
		require.NoError(t, err)
		assert.Equal(t, "09/01/2007", got)
	})

	t.Run("unknown month is fatal", func(t *testing.T) {
		_, err := formatDate(dateLine{Day: "02", Month: "Abc", Year: "25"})
		require.Error(t, err)
		var unknownMonth *ErrUnknownMonth
		require.ErrorAs(t, err, &unknownMonth)
		assert.Equal(t, "Abc", unknownMonth.Token)
	})
}

func TestFindMoneyTokens(t *testing.T) {
	t.Run("left-to-right order", func(t *testing.T) {
		tokens := findMoneyTokens("CR SALARY 1,000.00 1000.00")
		assert.Equal(t, []string{"1,000.00", "1000.00"}, tokens)
	})

	t.Run("comma-grouped tokens stay whole", func(t *testing.T) {
		tokens := findMoneyTokens("BP MORTGAGE 1,234.56 10,000.00")
		assert.Equal(t, []string{"1,234.56", "10,000.00"}, tokens)
	})

	t.Run("ignores non-money numerics", func(t *testing.T) {
		assert.Empty(t, findMoneyTokens("VIS STORE 1234 REF 9"))
		assert.Empty(t, findMoneyTokens("RATE 1.5"))
	})
}

func TestCleanAmount(t *testing.T) {
	assert.Equal(t, "1234.56", cleanAmount("1,234.56"))
	assert.Equal(t, "12.34", cleanAmount("12.34"))
}

func TestIsTransactionStart(t *testing.T) {
	for _, line := range []string{
		"CR REFUND 10.00",
		"DD RENT 500.00",
		"VIS TESCO 12.34 987.66",
		"TFR SAVINGS 50.00",
		"BP PHONE 19.99",
		"   VIS INDENTED 5.00", // spurious indentation from extraction
	} {
		assert.True(t, isTransactionStart(line), "line %q", line)
	}

	for _, line := range []string{
		"CRX NOT A CODE",
		"DDX 1.00",
		"VISIBLE PAYMENT",
		"SOME CONTINUATION TEXT",
	} {
		assert.False(t, isTransactionStart(line), "line %q", line)
	}
}

func TestIsBoilerplate(t *testing.T) {
	assert.True(t, isBoilerplate("BALANCE CARRIED FORWARD 1,234.56"))
	assert.True(t, isBoilerplate("Balance Brought Forward 987.66"))
	assert.True(t, isBoilerplate("  BALANCE  CARRIED  FORWARD  "))
	assert.False(t, isBoilerplate("VIS TESCO 12.34"))
	assert.False(t, isBoilerplate("02 Dec 25 CR SALARY 1000.00"))
}
