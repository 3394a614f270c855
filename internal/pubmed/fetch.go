package pubmed

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"bioscan/internal/config"
	"bioscan/internal/model"
)

const (
	// EFetch is chunked to stay under the response size the eutils API is
	// willing to serve in one request.
	fetchBatchSize = 50

	searchAttempts = 3

	// Papers with shorter abstracts carry too little text to analyze.
	minAbstractLength = 50
)

var httpClient = &http.Client{Timeout: 60 * time.Second}

// Fetcher retrieves paper records from the PubMed eutils API. An empty
// result set is a valid, non-error outcome.
type Fetcher struct {
	Config *config.Config
	Logger *zap.Logger
}

func NewFetcher(cfg *config.Config, logger *zap.Logger) *Fetcher {
	return &Fetcher{Config: cfg, Logger: logger}
}

// Fetch searches PubMed for the keyword and returns up to limit unique
// papers with usable abstracts.
func (f *Fetcher) Fetch(ctx context.Context, keyword string, limit int) ([]model.Paper, error) {
	log := f.Logger.With(zap.String("keyword", keyword), zap.Int("limit", limit))
	log.Info("Searching PubMed")

	ids, err := f.searchIDs(ctx, keyword, limit)
	if err != nil {
		return nil, fmt.Errorf("pubmed search failed: %w", err)
	}
	if len(ids) == 0 {
		log.Warn("No papers found for query")
		return nil, nil
	}

	log.Info("Found PMIDs, fetching details", zap.Int("count", len(ids)))

	seen := make(map[string]struct{})
	var papers []model.Paper

	for i := 0; i < len(ids); i += fetchBatchSize {
		end := i + fetchBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		articles, err := f.fetchChunk(ctx, ids[i:end])
		if err != nil {
			// Skip the chunk and keep going, as one oversized or flaky
			// response should not sink the whole retrieval.
			log.Error("Batch fetch failed", zap.Error(err))
			continue
		}

		for _, article := range articles {
			pmid := strings.TrimSpace(article.MedlineCitation.PMID)
			if pmid == "" {
				continue
			}
			if _, dup := seen[pmid]; dup {
				continue
			}
			seen[pmid] = struct{}{}

			title := article.MedlineCitation.Article.ArticleTitle
			if title == "" {
				title = "No Title"
			}
			abstract := strings.Join(article.MedlineCitation.Article.Abstract.AbstractText, " ")
			if len(abstract) <= minAbstractLength {
				continue
			}

			papers = append(papers, model.Paper{PMID: pmid, Title: title, Abstract: abstract})
		}
	}

	log.Info("Extracted abstracts", zap.Int("papers", len(papers)))
	return papers, nil
}

// searchIDs runs an ESearch query with retries for transient failures.
func (f *Fetcher) searchIDs(ctx context.Context, keyword string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", keyword)
	params.Set("retmax", fmt.Sprintf("%d", limit))
	params.Set("retmode", "json")
	f.addIdentification(params)

	searchURL := fmt.Sprintf("%s/esearch.fcgi?%s", f.Config.PubMedBaseURL, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= searchAttempts; attempt++ {
		resp, err := f.getJSON(ctx, searchURL)
		if err == nil {
			return resp.ESearchResult.IDList, nil
		}
		lastErr = err
		if attempt < searchAttempts {
			f.Logger.Warn("Search attempt failed, retrying",
				zap.Int("attempt", attempt), zap.Error(err))
			select {
			case <-time.After(2 * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

func (f *Fetcher) getJSON(ctx context.Context, searchURL string) (*esearchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("esearch returned status %d: %s", resp.StatusCode, string(body))
	}

	var result esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse esearch response: %w", err)
	}
	return &result, nil
}

// fetchChunk retrieves full records for one batch of PMIDs via EFetch.
func (f *Fetcher) fetchChunk(ctx context.Context, pmids []string) ([]pubmedArticle, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("retmode", "xml")
	f.addIdentification(params)

	fetchURL := fmt.Sprintf("%s/efetch.fcgi?%s", f.Config.PubMedBaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("efetch returned status %d", resp.StatusCode)
	}

	var set pubmedArticleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to parse efetch response: %w", err)
	}

	return set.Articles, nil
}

// addIdentification attaches the NCBI policy parameters when configured.
func (f *Fetcher) addIdentification(params url.Values) {
	if f.Config.PubMedAPIKey != "" {
		params.Set("api_key", f.Config.PubMedAPIKey)
	}
	if f.Config.PubMedEmail != "" {
		params.Set("email", f.Config.PubMedEmail)
	}
	if f.Config.PubMedTool != "" {
		params.Set("tool", f.Config.PubMedTool)
	}
}
