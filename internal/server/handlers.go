package server

import (
	"errors"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-templated/pkg/record"
	"github.com/goliatone/go-templated/pkg/render"
)

type savedRecord struct {
	ID         string             `json:"id"`
	RecordType string             `json:"record_type"`
	Attributes map[string]*string `json:"attributes"`
}

func (s *Server) form(c echo.Context) (Form, error) {
	form, ok := s.forms[record.TypeName(c.Param("type"))]
	if !ok {
		return Form{}, echo.NewHTTPError(http.StatusNotFound, "unknown record type")
	}
	return form, nil
}

func (s *Server) newRecord(c echo.Context) error {
	form, err := s.form(c)
	if err != nil {
		return err
	}
	return s.renderForm(c, form, form.NewRecord(), "/"+form.RecordType)
}

func (s *Server) editRecord(c echo.Context) error {
	form, err := s.form(c)
	if err != nil {
		return err
	}
	rec, err := s.load(c, form)
	if err != nil {
		return err
	}
	return s.renderForm(c, form, rec, "/"+form.RecordType)
}

func (s *Server) createRecord(c echo.Context) error {
	form, err := s.form(c)
	if err != nil {
		return err
	}
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}

	rec := form.NewRecord()
	for _, attribute := range form.Attributes() {
		name := render.FieldName(form.RecordType, attribute)
		if values, ok := params[name]; ok && len(values) > 0 {
			value := values[0]
			rec.Values[attribute] = &value
		}
	}

	ctx := c.Request().Context()
	id, err := s.app.Save(ctx, rec, form.Attributes())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	stored, err := s.app.Store().Get(ctx, form.RecordType, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, savedRecord{ID: id, RecordType: form.RecordType, Attributes: stored})
}

func (s *Server) showRecord(c echo.Context) error {
	form, err := s.form(c)
	if err != nil {
		return err
	}
	rec, err := s.load(c, form)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, savedRecord{ID: rec.ID, RecordType: form.RecordType, Attributes: rec.Values})
}

func (s *Server) load(c echo.Context, form Form) (*record.Map, error) {
	id := c.Param("id")
	values, err := s.app.Store().Get(c.Request().Context(), form.RecordType, id)
	if errors.Is(err, record.ErrNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "record not found")
	}
	if err != nil {
		return nil, err
	}
	rec := form.NewRecord()
	rec.ID = id
	for attribute, value := range values {
		rec.Values[attribute] = value
	}
	return rec, nil
}

func (s *Server) renderForm(c echo.Context, form Form, rec record.Record, action string) error {
	ctx := c.Request().Context()
	fields := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		markup, err := s.app.Render(ctx, render.Request{
			Control:   field.Control,
			Attribute: field.Attribute,
			Record:    rec,
			Options:   render.FieldOptions{Rows: field.Rows, Cols: field.Cols},
		})
		if err != nil {
			return err
		}
		fields = append(fields, map[string]any{
			"id":     render.DOMID(form.RecordType, field.Attribute),
			"label":  fieldLabel(field),
			"markup": markup,
		})
	}

	title := form.Title
	if title == "" {
		title = form.RecordType
	}
	page, err := s.pages.RenderTemplate("templates/form", map[string]any{
		"title":        title,
		"head":         s.app.Head(),
		"runtime_path": path.Join(runtimePrefix, "templated-attribute.js"),
		"action":       action,
		"fields":       fields,
	})
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, page)
}
