package datalayer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	SetHeader(name, value string)
	POST(path string, body any) error
	POSTRaw(path, body string) error
	GET(path string) error
	Status() int
	Header(name string) string
	Body() string
	GetResponseField(path string) (any, error)
}

// RegisterSteps registers data layer step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &dataLayerSteps{tc: tc}

	ctx.Step(`^the request header "([^"]*)" is "([^"]*)"$`, steps.setHeader)
	ctx.Step(`^I post a page view for "([^"]*)"$`, steps.postPageView)
	ctx.Step(`^I post to "([^"]*)":$`, steps.postDocString)
	ctx.Step(`^I request "([^"]*)"$`, steps.get)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be null$`, steps.fieldShouldBeNull)
	ctx.Step(`^the response field "([^"]*)" should be present$`, steps.fieldShouldBePresent)
	ctx.Step(`^the response should contain (\d+) script elements?$`, steps.scriptCount)
	ctx.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, steps.headerShouldBe)
}

type dataLayerSteps struct {
	tc TestContext
}

func (s *dataLayerSteps) setHeader(_ context.Context, name, value string) error {
	s.tc.SetHeader(name, value)
	return nil
}

func (s *dataLayerSteps) postPageView(_ context.Context, url string) error {
	return s.tc.POST("/v1/datalayer", map[string]any{"url": url})
}

func (s *dataLayerSteps) postDocString(_ context.Context, path string, body *godog.DocString) error {
	return s.tc.POSTRaw(path, body.Content)
}

func (s *dataLayerSteps) get(_ context.Context, path string) error {
	return s.tc.GET(path)
}

func (s *dataLayerSteps) statusShouldBe(_ context.Context, expected int) error {
	if got := s.tc.Status(); got != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, got, s.tc.Body())
	}
	return nil
}

func (s *dataLayerSteps) fieldShouldBe(_ context.Context, path, expected string) error {
	v, err := s.tc.GetResponseField(path)
	if err != nil {
		return err
	}
	var got string
	switch t := v.(type) {
	case string:
		got = t
	case bool:
		got = strconv.FormatBool(t)
	case float64:
		got = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		got = fmt.Sprint(t)
	}
	if got != expected {
		return fmt.Errorf("expected %s to be %q, got %q", path, expected, got)
	}
	return nil
}

func (s *dataLayerSteps) fieldShouldBeNull(_ context.Context, path string) error {
	v, err := s.tc.GetResponseField(path)
	if err != nil {
		return err
	}
	if v != nil {
		return fmt.Errorf("expected %s to be null, got %v", path, v)
	}
	return nil
}

func (s *dataLayerSteps) fieldShouldBePresent(_ context.Context, path string) error {
	_, err := s.tc.GetResponseField(path)
	return err
}

func (s *dataLayerSteps) scriptCount(_ context.Context, expected int) error {
	if got := strings.Count(s.tc.Body(), `id="customdl-init"`); got != expected {
		return fmt.Errorf("expected %d script elements, got %d", expected, got)
	}
	return nil
}

func (s *dataLayerSteps) headerShouldBe(_ context.Context, name, expected string) error {
	if got := s.tc.Header(name); got != expected {
		return fmt.Errorf("expected header %s to be %q, got %q", name, expected, got)
	}
	return nil
}
