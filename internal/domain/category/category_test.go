package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_AddPreservesOrder(t *testing.T) {
	s := NewSet(nil)
	s.Add("uber", "Transporte")
	s.Add("*mercado*", "Alimentação")
	s.Add("farmacia", "Saúde")

	rules := s.Rules()
	assert.Equal(t, []Rule{
		{Pattern: "uber", Category: "Transporte"},
		{Pattern: "*mercado*", Category: "Alimentação"},
		{Pattern: "farmacia", Category: "Saúde"},
	}, rules)
}

func TestSet_AddUpdatesInPlace(t *testing.T) {
	s := NewSet([]Rule{
		{Pattern: "uber", Category: "Transporte"},
		{Pattern: "mercado", Category: "Alimentação"},
	})

	s.Add("uber", "Viagem")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, Rule{Pattern: "uber", Category: "Viagem"}, s.Rules()[0])
}

func TestSet_Categories(t *testing.T) {
	s := NewSet([]Rule{
		{Pattern: "uber", Category: "Transporte"},
		{Pattern: "99", Category: "Transporte"},
		{Pattern: "mercado", Category: "Alimentação"},
		{Pattern: "metro", Category: "Transporte"},
	})

	assert.Equal(t, []string{"Transporte", "Alimentação"}, s.Categories())
}

func TestSet_PatternsByCategory(t *testing.T) {
	s := NewSet([]Rule{
		{Pattern: "uber", Category: "Transporte"},
		{Pattern: "mercado", Category: "Alimentação"},
		{Pattern: "99", Category: "Transporte"},
	})

	assert.Equal(t, []string{"uber", "99"}, s.PatternsByCategory("Transporte"))
	assert.Nil(t, s.PatternsByCategory("Lazer"))
}

func TestSet_CategoryStats(t *testing.T) {
	s := NewSet([]Rule{
		{Pattern: "uber", Category: "Transporte"},
		{Pattern: "99", Category: "Transporte"},
		{Pattern: "mercado", Category: "Alimentação"},
	})

	assert.Equal(t, map[string]int{"Transporte": 2, "Alimentação": 1}, s.CategoryStats())
}

func TestSet_NilReceiver(t *testing.T) {
	var s *Set

	assert.Nil(t, s.Rules())
	assert.Zero(t, s.Len())
	assert.Nil(t, s.Categories())
	assert.Empty(t, s.CategoryStats())
}
