package main

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// routeDoc renders a swagger 2.0 document from the routes registered on e.
type routeDoc struct {
	e       *echo.Echo
	title   string
	version string
}

type swaggerParam struct {
	Name     string `json:"name"`
	In       string `json:"in"`
	Required bool   `json:"required"`
	Type     string `json:"type"`
}

type swaggerOp struct {
	OperationId string                 `json:"operationId"`
	Tags        []string               `json:"tags,omitempty"`
	Parameters  []swaggerParam         `json:"parameters,omitempty"`
	Responses   map[string]interface{} `json:"responses"`
}

func (d routeDoc) ReadDoc() string {
	paths := map[string]map[string]swaggerOp{}
	routes := d.e.Routes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path+routes[i].Method < routes[j].Path+routes[j].Method
	})
	for _, r := range routes {
		if strings.HasPrefix(r.Path, "/swagger") {
			continue
		}
		path, params := swaggerPath(r.Path)
		if paths[path] == nil {
			paths[path] = map[string]swaggerOp{}
		}
		op := swaggerOp{
			OperationId: strings.ToLower(r.Method) + strings.ReplaceAll(strings.Title(strings.ReplaceAll(path, "/", " ")), " ", ""),
			Parameters:  params,
			Responses:   map[string]interface{}{"200": map[string]string{"description": "JsonResponse"}},
		}
		if tag := strings.SplitN(strings.TrimPrefix(r.Path, "/"), "/", 2)[0]; tag != "" {
			op.Tags = []string{tag}
		}
		paths[path][strings.ToLower(r.Method)] = op
	}

	doc, err := json.Marshal(map[string]interface{}{
		"swagger":  "2.0",
		"info":     map[string]string{"title": d.title, "version": d.version},
		"consumes": []string{"application/json"},
		"produces": []string{"application/json"},
		"paths":    paths,
	})
	if err != nil {
		return "{}"
	}
	return string(doc)
}

// swaggerPath turns echo's ":id" segments into "{id}" path parameters.
func swaggerPath(path string) (string, []swaggerParam) {
	var params []swaggerParam
	segs := strings.Split(path, "/")
	for i, seg := range segs {
		if strings.HasPrefix(seg, ":") {
			name := seg[1:]
			segs[i] = "{" + name + "}"
			params = append(params, swaggerParam{Name: name, In: "path", Required: true, Type: "string"})
		}
	}
	return strings.Join(segs, "/"), params
}

// registerDocs serves the route document under /swagger. Call it after every
// route is registered and only once per process.
func registerDocs(e *echo.Echo, title, version string) {
	swag.Register(swag.Name, routeDoc{e: e, title: title, version: version})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
