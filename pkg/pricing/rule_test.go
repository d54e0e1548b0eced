package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatPriceAbsentProductIsFree(t *testing.T) {
	// Arrange
	rule := NewFlatPrice('A', 20)

	// Act
	price := rule.Price(map[rune]int64{'B': 3})

	// Assert
	assert.Equal(t, int64(0), price)
}

func TestFlatPriceIsLinearInCount(t *testing.T) {
	// Arrange
	rule := NewFlatPrice('A', 20)

	// Act
	price := rule.Price(map[rune]int64{'A': 7, 'B': 3})

	// Assert
	assert.Equal(t, int64(140), price)
}

func TestFlatPriceNegativeCostActsAsDiscount(t *testing.T) {
	// Arrange
	rule := NewFlatPrice('A', -5)

	// Act
	price := rule.Price(map[rune]int64{'A': 4})

	// Assert
	assert.Equal(t, int64(-20), price)
}

func TestNewBundlePriceRejectsZeroSize(t *testing.T) {
	// Arrange nil

	// Act
	_, err := NewBundlePrice('B', 50, 0, 150)

	// Assert
	assert.ErrorIs(t, err, InvalidBundleSizeError{0})
}

func TestNewBundlePriceRejectsNegativeSize(t *testing.T) {
	// Arrange nil

	// Act
	_, err := NewBundlePrice('B', 50, -3, 150)

	// Assert
	assert.ErrorIs(t, err, InvalidBundleSizeError{-3})
}

func TestBundlePriceAbsentProductIsFree(t *testing.T) {
	// Arrange
	rule, err := NewBundlePrice('B', 50, 5, 150)
	assert.NoError(t, err)

	// Act
	price := rule.Price(map[rune]int64{'A': 2})

	// Assert
	assert.Equal(t, int64(0), price)
}

func TestBundlePriceExactBundles(t *testing.T) {
	// Arrange
	rule, err := NewBundlePrice('B', 50, 5, 150)
	assert.NoError(t, err)

	// Act
	price := rule.Price(map[rune]int64{'B': 10})

	// Assert
	assert.Equal(t, int64(300), price)
}

func TestBundlePriceLeftoversAtLoneCost(t *testing.T) {
	// Arrange
	rule, err := NewBundlePrice('B', 50, 5, 150)
	assert.NoError(t, err)

	// Act
	price := rule.Price(map[rune]int64{'B': 13})

	// Assert
	assert.Equal(t, int64(450+150), price)
}

func TestBundlePriceBelowOneBundleIsAllLoneCost(t *testing.T) {
	// Arrange
	rule, err := NewBundlePrice('B', 50, 5, 150)
	assert.NoError(t, err)

	// Act
	price := rule.Price(map[rune]int64{'B': 4})

	// Assert
	assert.Equal(t, int64(200), price)
}

func TestBundlePriceSizeOneAlwaysBundles(t *testing.T) {
	// Arrange
	rule, err := NewBundlePrice('B', 50, 1, 40)
	assert.NoError(t, err)

	// Act
	price := rule.Price(map[rune]int64{'B': 6})

	// Assert
	assert.Equal(t, int64(240), price)
}
