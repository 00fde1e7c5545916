// Package openapi imports templated attribute declarations from OpenAPI
// component schemas. A property opts in with the x-templated extension:
//
//	components:
//	  schemas:
//	    User:
//	      type: object
//	      properties:
//	        bio:
//	          type: string
//	          x-templated:
//	            label: Tell us about yourself.
//
// The record type defaults to the snake_cased schema name and can be
// overridden per schema with x-templated-record.
package openapi
