// Package controller models the client-side behaviour bound to each templated
// form field. The browser runtime (templated-attribute.js) implements the
// same machine; this package is the reference used by server-side fillers
// and tests.
//
// A field is either ShowingTemplate (content equals the template, styled with
// the templated CSS class) or ShowingUserData. keyup re-evaluates the state
// from content, blur restores the template into blank fields, and focus
// clears label templates so the user starts from an empty field. Each field
// is independent and handlers run to completion in delivery order.
package controller
