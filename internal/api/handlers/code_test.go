package handlers_test

import (
	"net/http"
	"testing"

	"github.com/clinicare/clinic-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codeResponse struct {
	ChapterCode     string `json:"chapter_code"`
	CategoryCode    string `json:"category_code"`
	SubcategoryCode string `json:"subcategory_code"`
	Title           string `json:"title"`
}

func TestCodeHandler_Search(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedCodes(t, ts.DB.DB)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCount  int
	}{
		{
			name:           "by chapter",
			query:          "chapter_code=A",
			expectedStatus: http.StatusOK,
			expectedCount:  3,
		},
		{
			name:           "chapter narrowed by category",
			query:          "chapter_code=A&category_code=01",
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "full key",
			query:          "chapter_code=A&category_code=01&subcategory_code=1",
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name:           "lowercase input is normalized",
			query:          "chapter_code=b",
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name:           "no matches",
			query:          "chapter_code=Z",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing chapter",
			query:          "category_code=01",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL("/diagnosis?" + tt.query))
			require.NoError(t, err)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			if tt.expectedStatus == http.StatusOK {
				var codes []codeResponse
				testutil.AssertJSONResponse(t, resp, &codes)
				assert.Len(t, codes, tt.expectedCount)
			}
		})
	}
}
