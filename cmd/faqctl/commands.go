package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/faqsearch/internal/db/redis"
	"github.com/kailas-cloud/faqsearch/internal/domain/faq"
	"github.com/kailas-cloud/faqsearch/internal/domain/search/request"
	"github.com/kailas-cloud/faqsearch/internal/domain/search/result"
	faqrepo "github.com/kailas-cloud/faqsearch/internal/repository/faq"
	cataloguc "github.com/kailas-cloud/faqsearch/internal/usecase/catalog"
	searchuc "github.com/kailas-cloud/faqsearch/internal/usecase/search"
)

const defaultSeedTimeout = 10 * time.Second

type resultJSON struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Score   int    `json:"score"`
}

type outcomeJSON struct {
	Results []resultJSON `json:"results"`
	Summary string       `json:"summary"`
	Sources []string     `json:"sources"`
}

func queryCommand(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	req, err := request.New(text, c.Int("limit"), request.MaxLimit)
	if err != nil {
		return err
	}

	docs, err := loadFile(c)
	if err != nil {
		return err
	}

	out := searchuc.Search(docs, req.Query(), req.Limit())
	loggerFrom(c).Debug("query done",
		zap.String("query", req.Query()),
		zap.Int("results", len(out.Results())),
	)

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(outcomeToJSON(out))
}

func validateCommand(c *cli.Context) error {
	docs, err := loadFile(c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "%s: %d documents OK\n", c.String("file"), len(docs))
	return err
}

func seedCommand(c *cli.Context) error {
	docs, err := loadFile(c)
	if err != nil {
		return err
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    c.StringSlice("addr"),
		Password: c.String("password"),
	})
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(c.Context, c.Duration("timeout")); err != nil {
		return err
	}

	key := c.String("key")
	if err := faqrepo.NewStoreSource(store, key).Save(c.Context, docs); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	loggerFrom(c).Info("catalog seeded", zap.String("key", key), zap.Int("documents", len(docs)))
	_, err = fmt.Fprintf(c.App.Writer, "seeded %d documents into %s\n", len(docs), key)
	return err
}

// loadFile reads the --file catalog through the same checks the server applies.
func loadFile(c *cli.Context) ([]faq.Document, error) {
	catalog := cataloguc.New(faqrepo.NewFileSource(c.String("file")), loggerFrom(c))
	if err := catalog.Load(c.Context); err != nil {
		return nil, err
	}
	return catalog.Documents()
}

func outcomeToJSON(out result.Outcome) outcomeJSON {
	rs := out.Results()
	items := make([]resultJSON, len(rs))
	for i := range rs {
		items[i] = resultJSON{ID: rs[i].ID(), Title: rs[i].Title(), Snippet: rs[i].Snippet(), Score: rs[i].Score()}
	}
	return outcomeJSON{Results: items, Summary: out.Summary(), Sources: out.Sources()}
}
