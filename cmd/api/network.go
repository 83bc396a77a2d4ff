package main

import (
	"bytes"
	"context"
	"strings"

	"streetgrade/internal/graph"
	"streetgrade/internal/pipeline"
	"streetgrade/internal/render"

	"github.com/danielgtaylor/huma/v2"
	"github.com/paulmach/osm"
	"github.com/twpayne/go-polyline"
)

// NetworkInput selects a street network
type NetworkInput struct {
	Place       string  `query:"place" example:"Piedmont, California, USA" doc:"Place name; defaults to the configured place"`
	Address     string  `query:"address" doc:"Fetch the network around this address instead of a place"`
	Distance    float64 `query:"distance" minimum:"0" example:"1000" doc:"Radius in meters around the address"`
	NetworkType string  `query:"network_type" enum:"drive,walk,all" default:"drive" doc:"Street network type"`
}

// EdgeGrade is a graded street segment
type EdgeGrade struct {
	U        int64   `json:"u" doc:"OSM id of the start node"`
	V        int64   `json:"v" doc:"OSM id of the end node"`
	Key      int     `json:"key" doc:"Distinguishes parallel edges between u and v"`
	Name     string  `json:"name,omitempty"`
	Highway  string  `json:"highway,omitempty"`
	Length   float64 `json:"length" doc:"Length in meters"`
	Grade    float64 `json:"grade" doc:"Rise over run from u to v"`
	GradeAbs float64 `json:"grade_abs"`
	Polyline string  `json:"polyline" doc:"Encoded polyline of the edge geometry"`
}

// GradesOutput is the graded network
type GradesOutput struct {
	Body struct {
		Summary pipeline.Summary `json:"summary"`
		Edges   []EdgeGrade      `json:"edges"`
	}
}

// RenderOutput is a PNG image
type RenderOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// request fills the input gaps from the configured network settings
func (app *App) request(input *NetworkInput) pipeline.Request {
	req := pipeline.RequestFromConfig(app.network)
	req.NetworkType = input.NetworkType

	if strings.TrimSpace(input.Address) != "" {
		req.Address = input.Address
		if input.Distance > 0 {
			req.Distance = input.Distance
		}
		return req
	}

	// An explicit place drops any configured address
	if strings.TrimSpace(input.Place) != "" {
		req.Place = input.Place
		req.Address = ""
	}
	return req
}

// handleGetGrades runs the pipeline and returns the graded edges
func (app *App) handleGetGrades(ctx context.Context, input *NetworkInput) (*GradesOutput, error) {
	result, err := app.grader.Run(ctx, app.request(input))
	if err != nil {
		return nil, app.toHTTPError(err, "failed to grade street network")
	}

	g := result.Graph()
	resp := &GradesOutput{}
	resp.Body.Summary = result.Summary
	resp.Body.Edges = make([]EdgeGrade, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		resp.Body.Edges = append(resp.Body.Edges, EdgeGrade{
			U:        int64(e.U),
			V:        int64(e.V),
			Key:      e.Key,
			Name:     e.Name,
			Highway:  e.Highway,
			Length:   e.Length,
			Grade:    e.Grade,
			GradeAbs: e.GradeAbs,
			Polyline: encodeEdge(g, e),
		})
	}

	return resp, nil
}

// handleGetRender runs the pipeline and renders the network
func (app *App) handleGetRender(ctx context.Context, input *NetworkInput) (*RenderOutput, error) {
	result, err := app.grader.Run(ctx, app.request(input))
	if err != nil {
		return nil, app.toHTTPError(err, "failed to grade street network")
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, result.Graph(), app.render); err != nil {
		app.logger.Error("failed to render street network", "error", err)
		return nil, huma.Error500InternalServerError("failed to render street network")
	}

	return &RenderOutput{ContentType: "image/png", Body: buf.Bytes()}, nil
}

// encodeEdge encodes the edge geometry, or the straight line between its
// nodes when it has none
func encodeEdge(g *graph.Graph, e *graph.Edge) string {
	coords := make([][]float64, 0, len(e.Geometry))
	for _, p := range e.Geometry {
		coords = append(coords, []float64{p.Lat(), p.Lon()})
	}
	if len(coords) < 2 {
		coords = coords[:0]
		for _, id := range []osm.NodeID{e.U, e.V} {
			if n, ok := g.Node(id); ok {
				coords = append(coords, []float64{n.Lat(), n.Lon()})
			}
		}
	}
	return string(polyline.EncodeCoords(coords))
}
