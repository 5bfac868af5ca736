package model

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/feast"
)

type fakeFeast struct {
	values map[string]map[string]interface{} // post_id -> feature ref -> value
	last   *feast.GetOnlineFeaturesRequest
	err    error
}

func (f *fakeFeast) GetOnlineFeatures(_ context.Context, req *feast.GetOnlineFeaturesRequest) (*feast.GetOnlineFeaturesResponse, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	resp := &feast.GetOnlineFeaturesResponse{}
	for _, row := range req.EntityRows {
		id, _ := row["post_id"].(string)
		resp.FeatureVectors = append(resp.FeatureVectors, feast.FeatureVector{Values: f.values[id], EntityRow: row})
	}
	return resp, nil
}

func (f *fakeFeast) Close() error { return nil }

func featureValues(view string, v float64) map[string]interface{} {
	out := make(map[string]interface{})
	for _, ref := range FeatureRefs(view) {
		out[ref] = v
	}
	return out
}

func TestFeastPredictor(t *testing.T) {
	client := &fakeFeast{values: map[string]map[string]interface{}{
		"1": featureValues("post_engagement", 0.2),
	}}
	p := NewFeastPredictor(client, "feed", "post_engagement")

	pred, err := p.Predict(context.Background(), core.NewPost("1", "a", ""), false)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if err := pred.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if client.last.Project != "feed" || len(client.last.Features) != len(core.AllActions()) {
		t.Errorf("request = %+v", client.last)
	}
	if client.last.Features[0] != "post_engagement:p_favorite" {
		t.Errorf("first feature = %q", client.last.Features[0])
	}
}

func TestFeastPredictor_FollowingView(t *testing.T) {
	client := &fakeFeast{values: map[string]map[string]interface{}{
		"1": featureValues("in_network", 0.6),
	}}
	p := NewFeastPredictor(client, "feed", "post_engagement")
	p.FollowingFeatureView = "in_network"

	pred, err := p.Predict(context.Background(), core.NewPost("1", "a", ""), true)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if pred[core.ActionReply] != 0.6 {
		t.Errorf("reply = %v, want 0.6", pred[core.ActionReply])
	}
}

func TestFeastPredictor_Errors(t *testing.T) {
	boom := errors.New("unavailable")
	p := NewFeastPredictor(&fakeFeast{err: boom}, "feed", "v")
	if _, err := p.Predict(context.Background(), core.NewPost("1", "a", ""), false); !errors.Is(err, boom) {
		t.Errorf("err = %v, want client error", err)
	}

	missing := featureValues("v", 0.1)
	delete(missing, "v:p_report")
	p = NewFeastPredictor(&fakeFeast{values: map[string]map[string]interface{}{"1": missing}}, "feed", "v")
	if _, err := p.Predict(context.Background(), core.NewPost("1", "a", ""), false); !core.IsNotFound(err) {
		t.Errorf("missing feature: err = %v, want NOT_FOUND", err)
	}

	wrongType := featureValues("v", 0.1)
	wrongType["v:p_favorite"] = "high"
	p = NewFeastPredictor(&fakeFeast{values: map[string]map[string]interface{}{"1": wrongType}}, "feed", "v")
	if _, err := p.Predict(context.Background(), core.NewPost("1", "a", ""), false); !core.IsInvalidInput(err) {
		t.Errorf("wrong type: err = %v, want INVALID_INPUT", err)
	}
}
