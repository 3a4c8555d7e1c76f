package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameterRole_String(t *testing.T) {
	tests := []struct {
		role ParameterRole
		want string
	}{
		{ParameterRoleImplicit, "Implicit"},
		{ParameterRoleCancellationToken, "CancellationToken"},
		{ParameterRoleHeader, "Header"},
		{ParameterRolePath, "Path"},
		{ParameterRoleQuery, "Query"},
		{ParameterRoleQueryMap, "QueryMap"},
		{ParameterRoleRawQueryString, "RawQueryString"},
		{ParameterRoleBody, "Body"},
		{ParameterRoleHTTPRequestMessageProperty, "HttpRequestMessageProperty"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.String())
	}
}

func TestPropertyRole_String(t *testing.T) {
	tests := []struct {
		role PropertyRole
		want string
	}{
		{PropertyRoleNone, "None"},
		{PropertyRoleHeader, "Header"},
		{PropertyRolePath, "Path"},
		{PropertyRoleQuery, "Query"},
		{PropertyRoleHTTPRequestMessageProperty, "HttpRequestMessageProperty"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.String())
	}
}

func TestParameterModel_AttributeCount(t *testing.T) {
	tests := []struct {
		name string
		p    ParameterModel
		want int
	}{
		{"none", ParameterModel{}, 0},
		{"one", ParameterModel{Path: &ParameterPathAttribute{Key: "id"}}, 1},
		{"two", ParameterModel{
			Path:  &ParameterPathAttribute{Key: "id"},
			Query: &ParameterQueryAttribute{Key: "id"},
		}, 2},
		{"all seven", ParameterModel{
			Header:         &HeaderAttribute{Name: "X"},
			Path:           &ParameterPathAttribute{Key: "id"},
			Query:          &ParameterQueryAttribute{Key: "q"},
			QueryMap:       &ParameterQueryMapAttribute{},
			RawQueryString: &ParameterRawQueryStringAttribute{},
			Body:           &ParameterBodyAttribute{},
			HTTPMessage:    &ParameterHTTPRequestMessageAttribute{Key: "k"},
		}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.AttributeCount())
		})
	}
}

func TestParameterModel_EffectiveRole_Precedence(t *testing.T) {
	tests := []struct {
		name string
		p    ParameterModel
		want ParameterRole
	}{
		{"implicit", ParameterModel{}, ParameterRoleImplicit},
		{"cancellation token wins over everything", ParameterModel{
			IsCancellationToken: true,
			Body:                &ParameterBodyAttribute{},
		}, ParameterRoleCancellationToken},
		{"header before path", ParameterModel{
			Header: &HeaderAttribute{Name: "X"},
			Path:   &ParameterPathAttribute{Key: "id"},
		}, ParameterRoleHeader},
		{"path before query", ParameterModel{
			Path:  &ParameterPathAttribute{Key: "id"},
			Query: &ParameterQueryAttribute{Key: "q"},
		}, ParameterRolePath},
		{"query before queryMap", ParameterModel{
			Query:    &ParameterQueryAttribute{Key: "q"},
			QueryMap: &ParameterQueryMapAttribute{},
		}, ParameterRoleQuery},
		{"queryMap before rawQueryString", ParameterModel{
			QueryMap:       &ParameterQueryMapAttribute{},
			RawQueryString: &ParameterRawQueryStringAttribute{},
		}, ParameterRoleQueryMap},
		{"rawQueryString before body", ParameterModel{
			RawQueryString: &ParameterRawQueryStringAttribute{},
			Body:           &ParameterBodyAttribute{},
		}, ParameterRoleRawQueryString},
		{"body before httpMessage", ParameterModel{
			Body:        &ParameterBodyAttribute{},
			HTTPMessage: &ParameterHTTPRequestMessageAttribute{Key: "k"},
		}, ParameterRoleBody},
		{"httpMessage alone", ParameterModel{
			HTTPMessage: &ParameterHTTPRequestMessageAttribute{Key: "k"},
		}, ParameterRoleHTTPRequestMessageProperty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.EffectiveRole())
		})
	}
}
