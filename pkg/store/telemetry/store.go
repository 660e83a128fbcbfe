// Package telemetry executes SQL queries against the remote vessel
// telemetry endpoint. The endpoint is an AWS Lambda function invoked
// synchronously with a {"sql_query": ...} payload; it answers with a
// JSON row list, either bare or wrapped in an API-Gateway-style
// {"statusCode", "body"} envelope.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/de-tools/vessel-atlas/pkg/models/store"
)

// ErrUnreachable marks a transport-level failure: the query endpoint
// could not be invoked at all. Callers abort the whole batch on it.
var ErrUnreachable = errors.New("telemetry endpoint unreachable")

// QueryError is a source-level failure: the endpoint answered but
// rejected one query. Callers degrade the affected metric group only.
type QueryError struct {
	Query   string
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query rejected: %s", e.Message)
}

// Invoker is the slice of the Lambda client the store depends on.
type Invoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

type Config struct {
	FunctionName string
	Region       string
	Profile      string
}

type Store struct {
	client       Invoker
	functionName string
}

// NewStore builds a store around the shared AWS SDK config. The
// function name and region come from configuration, never from
// compiled-in constants.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.FunctionName == "" {
		return nil, fmt.Errorf("telemetry: function name is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithDefaultRegion(cfg.Region),
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return &Store{
		client:       lambda.NewFromConfig(awsCfg),
		functionName: cfg.FunctionName,
	}, nil
}

// NewStoreWithClient is the constructor used by tests and callers that
// manage their own client.
func NewStoreWithClient(client Invoker, functionName string) *Store {
	return &Store{client: client, functionName: functionName}
}

func (s *Store) ListVesselNames(ctx context.Context) ([]string, error) {
	rows, err := s.query(ctx, "select vessel_name from vessel_particulars")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := stringField(row, "vessel_name"); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *Store) FetchParticulars(ctx context.Context, vessels []string) ([]store.VesselParticulars, error) {
	q := fmt.Sprintf(
		"SELECT vessel_name, imo_number, vessel_type, dwt_class FROM vessel_particulars WHERE vessel_name IN (%s)",
		quoteList(vessels))
	rows, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}

	records := make([]store.VesselParticulars, 0, len(rows))
	for _, row := range rows {
		rec := store.VesselParticulars{}
		rec.VesselName, _ = stringField(row, "vessel_name")
		rec.IMONumber, _ = stringField(row, "imo_number")
		rec.VesselType, _ = stringField(row, "vessel_type")
		rec.DWTClass, _ = stringField(row, "dwt_class")
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) FetchHullSeries(ctx context.Context, vessels []string, start, end time.Time) ([]store.HullRecord, error) {
	q := fmt.Sprintf(
		"SELECT vessel_name, record_date, hull_roughness_power_loss_pct_ed FROM hull_performance_daily "+
			"WHERE vessel_name IN (%s) AND record_date BETWEEN '%s' AND '%s'",
		quoteList(vessels), start.Format("2006-01-02"), end.Format("2006-01-02"))
	rows, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}

	records := make([]store.HullRecord, 0, len(rows))
	for _, row := range rows {
		rec := store.HullRecord{ExcessPowerPct: row["hull_roughness_power_loss_pct_ed"]}
		rec.VesselName, _ = stringField(row, "vessel_name")
		rec.RecordDate = dateField(row, "record_date")
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) FetchEnginePerformance(ctx context.Context, vessels []string, start, end time.Time) ([]store.EngineRecord, error) {
	q := fmt.Sprintf(
		"SELECT vessel_name, record_date, sfoc_gkwh, potential_fuel_saving_mt FROM engine_performance_summary "+
			"WHERE vessel_name IN (%s) AND record_date BETWEEN '%s' AND '%s'",
		quoteList(vessels), start.Format("2006-01-02"), end.Format("2006-01-02"))
	rows, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}

	records := make([]store.EngineRecord, 0, len(rows))
	for _, row := range rows {
		rec := store.EngineRecord{
			SFOC:         row["sfoc_gkwh"],
			FuelSavingMT: row["potential_fuel_saving_mt"],
		}
		rec.VesselName, _ = stringField(row, "vessel_name")
		rec.RecordDate = dateField(row, "record_date")
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) FetchCIIRatings(ctx context.Context, vessels []string) ([]store.CIIRecord, error) {
	q := fmt.Sprintf(
		"SELECT vessel_name, reporting_year, cii_rating, cii_value FROM cii_ratings_ytd WHERE vessel_name IN (%s)",
		quoteList(vessels))
	rows, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}

	records := make([]store.CIIRecord, 0, len(rows))
	for _, row := range rows {
		rec := store.CIIRecord{Value: row["cii_value"]}
		rec.VesselName, _ = stringField(row, "vessel_name")
		rec.Rating, _ = stringField(row, "cii_rating")
		rec.ReportingYear = intField(row, "reporting_year")
		records = append(records, rec)
	}
	return records, nil
}

type queryRequest struct {
	SQLQuery string `json:"sql_query"`
}

type queryEnvelope struct {
	StatusCode int             `json:"statusCode"`
	Body       json.RawMessage `json:"body"`
}

func (s *Store) query(ctx context.Context, sqlQuery string) ([]map[string]any, error) {
	payload, err := json.Marshal(queryRequest{SQLQuery: sqlQuery})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query payload: %w", err)
	}

	out, err := s.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(s.functionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if out.FunctionError != nil {
		return nil, fmt.Errorf("%w: function error %s", ErrUnreachable, aws.ToString(out.FunctionError))
	}

	return decodeRows(out.Payload, sqlQuery)
}

// decodeRows accepts both response shapes the endpoint is known to
// produce: a bare row list, or an envelope whose body is either a row
// list or a JSON string containing one.
func decodeRows(payload []byte, sqlQuery string) ([]map[string]any, error) {
	var envelope queryEnvelope
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.StatusCode != 0 {
		if envelope.StatusCode != 200 {
			return nil, &QueryError{
				Query:   sqlQuery,
				Message: fmt.Sprintf("status %d: %s", envelope.StatusCode, strings.TrimSpace(string(envelope.Body))),
			}
		}

		body := envelope.Body
		var inner string
		if err := json.Unmarshal(body, &inner); err == nil {
			body = json.RawMessage(inner)
		}
		return unmarshalRows(body, sqlQuery)
	}

	return unmarshalRows(payload, sqlQuery)
}

func unmarshalRows(data []byte, sqlQuery string) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, &QueryError{Query: sqlQuery, Message: fmt.Sprintf("unexpected response shape: %v", err)}
	}
	return rows, nil
}

// quoteList renders vessel names as a quoted SQL IN list, doubling
// embedded single quotes.
func quoteList(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, "'"+strings.ReplaceAll(name, "'", "''")+"'")
	}
	return strings.Join(quoted, ", ")
}

func stringField(row map[string]any, key string) (string, bool) {
	v, ok := row[key].(string)
	return v, ok
}

func intField(row map[string]any, key string) int {
	switch v := row[key].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func dateField(row map[string]any, key string) time.Time {
	s, ok := stringField(row, key)
	if !ok {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
