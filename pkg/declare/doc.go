// Package declare loads templated attribute declarations from YAML or JSON
// files and applies them to a registry.
//
// A declaration file maps record types to attributes and their template:
//
//	records:
//	  user:
//	    bio:
//	      label: Tell us about yourself.
//	    website:
//	      starting_value: "http://"
//
// Template values are sanitised with a strict bluemonday policy so markup in
// a declaration file never reaches a rendered field.
package declare
