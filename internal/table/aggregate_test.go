package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tobaccocli/internal/errors"
)

func TestGroupAggregate_TopicTotals(t *testing.T) {
	// Filter to combustible totals plus all noncombustible rows, then sum
	// per (Year, Topic): the submeasure split collapses into topic totals.
	tbl, err := New(Schema{
		{Name: "Year", Kind: KindInt},
		{Name: "Topic", Kind: KindString},
		{Name: "Measure", Kind: KindString},
		{Name: "Total", Kind: KindFloat},
	}, [][]Value{
		{Int(2000), String("Combustible Tobacco"), String("All Combustibles"), Float(100)},
		{Int(2000), String("Noncombustible Tobacco"), String("X"), Float(10)},
		{Int(2000), String("Noncombustible Tobacco"), String("Y"), Float(5)},
	})
	require.NoError(t, err)

	filtered := tbl.FilterRows(func(r Row) bool {
		measure, err := r.String("Measure")
		if err != nil {
			return false
		}
		topic, err := r.String("Topic")
		if err != nil {
			return false
		}
		return measure == "All Combustibles" || topic == "Noncombustible Tobacco"
	})

	grouped, err := filtered.GroupAggregate(
		[]string{"Year", "Topic"},
		[]AggSpec{{Name: "Total", Source: "Total", Reduce: Sum}},
	)
	require.NoError(t, err)

	want := [][]string{
		{"2000", "Combustible Tobacco", "100"},
		{"2000", "Noncombustible Tobacco", "15"},
	}
	assert.Equal(t, want, grouped.Records())
}

func TestGroupAggregate_IdempotentOnOwnOutput(t *testing.T) {
	tbl := testTable(t)

	grouped, err := tbl.GroupAggregate(
		[]string{"Year", "Topic"},
		[]AggSpec{{Name: "Total", Source: "Total", Reduce: Sum}},
	)
	require.NoError(t, err)

	regrouped, err := grouped.Distinct().GroupAggregate(
		[]string{"Year", "Topic"},
		[]AggSpec{{Name: "Total", Source: "Total", Reduce: Sum}},
	)
	require.NoError(t, err)

	assert.Equal(t, grouped.Records(), regrouped.Records())
	assert.Equal(t, grouped.Schema(), regrouped.Schema())
}

func TestGroupAggregate_Reductions(t *testing.T) {
	tbl, err := New(Schema{
		{Name: "K", Kind: KindString},
		{Name: "V", Kind: KindFloat},
	}, [][]Value{
		{String("a"), Float(1)},
		{String("a"), Float(3)},
		{String("a"), Missing(KindFloat)},
		{String("b"), Float(5)},
	})
	require.NoError(t, err)

	grouped, err := tbl.GroupAggregate([]string{"K"}, []AggSpec{
		{Name: "Sum", Source: "V", Reduce: Sum},
		{Name: "Mean", Source: "V", Reduce: Mean},
		{Name: "Count", Source: "V", Reduce: Count},
		{Name: "Min", Source: "V", Reduce: Min},
		{Name: "Max", Source: "V", Reduce: Max},
	})
	require.NoError(t, err)

	// Missing values are skipped by every reduction.
	want := [][]string{
		{"a", "4", "2", "2", "1", "3"},
		{"b", "5", "5", "1", "5", "5"},
	}
	assert.Equal(t, want, grouped.Records())
}

func TestGroupAggregate_DeterministicBucketOrder(t *testing.T) {
	tbl := testTable(t)

	first, err := tbl.GroupAggregate([]string{"Topic"},
		[]AggSpec{{Name: "Total", Source: "Total", Reduce: Sum}})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := tbl.GroupAggregate([]string{"Topic"},
			[]AggSpec{{Name: "Total", Source: "Total", Reduce: Sum}})
		require.NoError(t, err)
		assert.Equal(t, first.Records(), again.Records())
	}
}

func TestGroupAggregate_Errors(t *testing.T) {
	tbl := testTable(t)

	tests := []struct {
		name     string
		keys     []string
		aggs     []AggSpec
		wantType errors.ErrorType
	}{
		{
			name:     "no keys",
			keys:     nil,
			aggs:     []AggSpec{{Name: "T", Source: "Total", Reduce: Sum}},
			wantType: errors.ErrTypeValidation,
		},
		{
			name:     "no aggregates",
			keys:     []string{"Year"},
			aggs:     nil,
			wantType: errors.ErrTypeValidation,
		},
		{
			name:     "unregistered reduction",
			keys:     []string{"Year"},
			aggs:     []AggSpec{{Name: "T", Source: "Total", Reduce: Reduction("first")}},
			wantType: errors.ErrTypeValidation,
		},
		{
			name:     "absent key column",
			keys:     []string{"Nope"},
			aggs:     []AggSpec{{Name: "T", Source: "Total", Reduce: Sum}},
			wantType: errors.ErrTypeSchema,
		},
		{
			name:     "absent source column",
			keys:     []string{"Year"},
			aggs:     []AggSpec{{Name: "T", Source: "Nope", Reduce: Sum}},
			wantType: errors.ErrTypeSchema,
		},
		{
			name:     "sum over text column",
			keys:     []string{"Year"},
			aggs:     []AggSpec{{Name: "T", Source: "Topic", Reduce: Sum}},
			wantType: errors.ErrTypeSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tbl.GroupAggregate(tt.keys, tt.aggs)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.wantType))
		})
	}
}

func TestGroupAggregate_MissingKeyOwnBucket(t *testing.T) {
	tbl, err := New(Schema{
		{Name: "Loc", Kind: KindString},
		{Name: "V", Kind: KindFloat},
	}, [][]Value{
		{Missing(KindString), Float(1)},
		{String(""), Float(2)},
		{Missing(KindString), Float(3)},
	})
	require.NoError(t, err)

	grouped, err := tbl.GroupAggregate([]string{"Loc"},
		[]AggSpec{{Name: "Sum", Source: "V", Reduce: Sum}})
	require.NoError(t, err)

	// Missing location and empty-string location stay separate buckets.
	require.Equal(t, 2, grouped.Len())
	k0, _ := grouped.Row(0).Value("Loc")
	assert.True(t, k0.IsMissing())
	s0, err := grouped.Row(0).Float("Sum")
	require.NoError(t, err)
	assert.Equal(t, 4.0, s0)
	s1, err := grouped.Row(1).Float("Sum")
	require.NoError(t, err)
	assert.Equal(t, 2.0, s1)
}

func TestGroupAggregate_CountTextColumn(t *testing.T) {
	tbl := testTable(t)

	grouped, err := tbl.GroupAggregate([]string{"Year"},
		[]AggSpec{{Name: "Topics", Source: "Topic", Reduce: Count}})
	require.NoError(t, err)

	want := [][]string{{"2000", "2"}, {"2001", "2"}}
	assert.Equal(t, want, grouped.Records())
}
