package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReviewRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		req           CreateReviewRequest
		expectedField []string
	}{
		{name: "Lowest rating", req: CreateReviewRequest{Rating: 1, Content: "Tạm được"}},
		{name: "Highest rating", req: CreateReviewRequest{Rating: 5, Content: "Rất hay"}},
		{name: "Content at limit", req: CreateReviewRequest{Rating: 4, Content: strings.Repeat("ồ", 1000)}},
		{name: "Rating zero", req: CreateReviewRequest{Rating: 0, Content: "x"}, expectedField: []string{"rating"}},
		{name: "Rating six", req: CreateReviewRequest{Rating: 6, Content: "x"}, expectedField: []string{"rating"}},
		{name: "Blank content", req: CreateReviewRequest{Rating: 3, Content: "  "}, expectedField: []string{"content"}},
		{name: "Content too long", req: CreateReviewRequest{Rating: 3, Content: strings.Repeat("a", 1001)}, expectedField: []string{"content"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()

			if len(tt.expectedField) == 0 {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.ElementsMatch(t, tt.expectedField, keys(verr.Fields))
		})
	}
}
