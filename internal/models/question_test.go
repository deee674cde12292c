package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuestionOptions(t *testing.T) {
	var question Question
	err := question.SetOptions([]string{"台北", "東京", "首爾", "曼谷"})
	require.NoError(t, err)

	options := question.OptionList()
	require.Equal(t, []string{"台北", "東京", "首爾", "曼谷"}, options)
}

func TestQuestionOptionsMalformed(t *testing.T) {
	question := Question{Options: "not json"}
	require.Empty(t, question.OptionList())
}
