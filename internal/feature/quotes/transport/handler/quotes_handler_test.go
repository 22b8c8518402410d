package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sector_dashboard/internal/feature/quotes/domain/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// mockQuotesUsecase is a QuotesUsecase mock with a function field.
type mockQuotesUsecase struct {
	GetQuotesFunc func(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error)
}

func (m *mockQuotesUsecase) GetQuotes(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error) {
	if m.GetQuotesFunc != nil {
		return m.GetQuotesFunc(ctx, symbols, market)
	}
	return nil, nil
}

func newQuotesRouter(uc QuotesUsecase) *gin.Engine {
	r := gin.New()
	r.GET("/api/quotes", NewQuotesHandler(uc).List)
	return r
}

func TestQuotesHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		getQuotesFunc  func(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error)
		expectedStatus int
		expectedBody   string
		wantSymbols    []string
	}{
		{
			name: "success: returns quotes",
			url:  "/api/quotes?symbols=sh600519,sz000858&market=CN",
			getQuotesFunc: func(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error) {
				return []entity.Quote{
					{Symbol: "sh600519", Name: "Kweichow Moutai", LocalName: "贵州茅台", Market: entity.MarketCN, Price: 1700, Change: 10, ChangePercent: 0.59, Volume: 25000},
					{Symbol: "sz000858", Name: "Wuliangye", LocalName: "五粮液", Market: entity.MarketCN, Price: 130.5, Change: -1.2, ChangePercent: -0.91, Volume: 80000},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"chineseName":"贵州茅台"`,
			wantSymbols:    []string{"sh600519", "sz000858"},
		},
		{
			name: "success: lowercase market is accepted",
			url:  "/api/quotes?symbols=AAPL&market=us",
			getQuotesFunc: func(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error) {
				if market != entity.MarketUS {
					return nil, errors.New("market not normalized")
				}
				return []entity.Quote{{Symbol: "AAPL", Market: entity.MarketUS, Price: 230}}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"symbol":"AAPL"`,
			wantSymbols:    []string{"AAPL"},
		},
		{
			name: "success: duplicate symbols collapse to one lookup",
			url:  "/api/quotes?symbols=AAPL,AAPL,%20AAPL%20,MSFT&market=US",
			getQuotesFunc: func(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error) {
				out := make([]entity.Quote, 0, len(symbols))
				for _, s := range symbols {
					out = append(out, entity.Quote{Symbol: s, Market: market, Price: 1})
				}
				return out, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"symbol":"MSFT"`,
			wantSymbols:    []string{"AAPL", "MSFT"},
		},
		{
			name:           "failure: missing market returns 400",
			url:            "/api/quotes?symbols=AAPL",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error"`,
		},
		{
			name:           "failure: unsupported market returns 400",
			url:            "/api/quotes?symbols=AAPL&market=JP",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error"`,
		},
		{
			name:           "failure: empty symbols returns 400",
			url:            "/api/quotes?symbols=,%20,&market=CN",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"symbols is required"`,
		},
		{
			name: "failure: usecase error returns 500",
			url:  "/api/quotes?symbols=AAPL&market=US",
			getQuotesFunc: func(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error) {
				return nil, errors.New("too many symbols")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var gotSymbols []string
			uc := &mockQuotesUsecase{
				GetQuotesFunc: func(ctx context.Context, symbols []string, market entity.Market) ([]entity.Quote, error) {
					gotSymbols = symbols
					if tt.getQuotesFunc == nil {
						return nil, nil
					}
					return tt.getQuotesFunc(ctx, symbols, market)
				},
			}
			router := newQuotesRouter(uc)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			if tt.wantSymbols != nil {
				assert.Equal(t, tt.wantSymbols, gotSymbols)
			}
		})
	}
}

func TestDedupeSymbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "plain list", raw: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "repeats keep first position", raw: "a,b,a,c,b", want: []string{"a", "b", "c"}},
		{name: "blanks and spaces dropped", raw: " a ,, b ,", want: []string{"a", "b"}},
		{name: "empty input", raw: "", want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, dedupeSymbols(tt.raw))
		})
	}
}
