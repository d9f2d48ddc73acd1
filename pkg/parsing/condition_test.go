package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConditions(t *testing.T) {
	got := ParseConditions("+dog -cat neutral")
	want := []ElementCondition{
		{Sign: ConditionRequired, Tag: "dog"},
		{Sign: ConditionForbidden, Tag: "cat"},
		{Sign: ConditionRequired, Tag: "neutral"},
	}
	assert.Equal(t, want, got)
}

func TestConditionsMatchEmptyAlwaysMatches(t *testing.T) {
	assert.True(t, ConditionsMatch(nil, nil))
	assert.True(t, ConditionsMatch([]ElementCondition{}, []string{"anything"}))
}

func TestConditionsMatchRequired(t *testing.T) {
	conds := ParseConditions("+dog")
	assert.True(t, ConditionsMatch(conds, []string{"dog", "friendly"}))
	assert.False(t, ConditionsMatch(conds, []string{"cat"}))
}

func TestConditionsMatchForbidden(t *testing.T) {
	conds := ParseConditions("-cat")
	assert.True(t, ConditionsMatch(conds, []string{"dog"}))
	assert.False(t, ConditionsMatch(conds, []string{"cat", "dog"}))
}

func TestConditionsMatchCombined(t *testing.T) {
	conds := ParseConditions("+dog -cat friendly")
	assert.True(t, ConditionsMatch(conds, []string{"dog", "friendly"}))
	assert.False(t, ConditionsMatch(conds, []string{"dog", "cat", "friendly"}))
	assert.False(t, ConditionsMatch(conds, []string{"dog"}))
}
