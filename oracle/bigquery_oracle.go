// Package oracle supplies host-side Word Oracle implementations. The
// core (pkg/csp) only ever depends on the Oracle interface it declares
// itself; everything here lives outside that boundary and is free to
// import whatever transport or SDK it needs.
package oracle

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// BigQueryOracle answers pattern requests by querying a word table
// shaped like the teacher's own `all_words` table: a word_key column,
// a scope column, and an obscure flag. Grounded directly on the
// teacher's src/main.go getWords query.
type BigQueryOracle struct {
	client  *bigquery.Client
	dataset string
	table   string
	scope   string
}

// NewBigQueryOracle opens a client against the given project and wraps
// it for pattern lookups against dataset.table, restricted to the
// given scope (pass "" to query across every scope).
func NewBigQueryOracle(ctx context.Context, project, dataset, table, scope string) (*BigQueryOracle, error) {
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("oracle: bigquery.NewClient: %w", err)
	}
	return &BigQueryOracle{client: client, dataset: dataset, table: table, scope: scope}, nil
}

// Close releases the underlying BigQuery client.
func (o *BigQueryOracle) Close() error {
	return o.client.Close()
}

// Request implements csp.Oracle. pattern uses '.' as a wildcard, which
// is translated to BigQuery's own single-character LIKE wildcard '_';
// any literal '_' or '%' in pattern (neither of which can occur in an
// uppercase-letters-only word) would otherwise need escaping, but
// since patternFor only ever emits letters and '.', none does.
func (o *BigQueryOracle) Request(ctx context.Context, pattern string, count int, used map[string]bool) ([]string, error) {
	likePattern := strings.ReplaceAll(pattern, ".", "_")

	excluded := make([]string, 0, len(used))
	for w := range used {
		excluded = append(excluded, w)
	}

	query := fmt.Sprintf(
		"SELECT word_key FROM `%s.%s` WHERE UPPER(word_key) LIKE @pattern AND LENGTH(word_key) = @length",
		o.dataset, o.table,
	)
	params := []bigquery.QueryParameter{
		{Name: "pattern", Value: likePattern},
		{Name: "length", Value: len(pattern)},
	}
	if o.scope != "" {
		query += " AND scope = @scope"
		params = append(params, bigquery.QueryParameter{Name: "scope", Value: o.scope})
	}
	if len(excluded) > 0 {
		query += " AND word_key NOT IN UNNEST(@excluded)"
		params = append(params, bigquery.QueryParameter{Name: "excluded", Value: excluded})
	}
	query += " LIMIT @count"
	params = append(params, bigquery.QueryParameter{Name: "count", Value: count})

	q := o.client.Query(query)
	q.Parameters = params
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("oracle: bigquery run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("oracle: bigquery wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("oracle: bigquery job: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("oracle: bigquery read: %w", err)
	}

	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("oracle: bigquery iterate: %w", err)
		}
		word, ok := row[0].(string)
		if !ok {
			continue
		}
		words = append(words, strings.ToUpper(word))
	}
	return words, nil
}
