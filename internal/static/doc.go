// Package static embeds the stylesheet and scripts shared by every page of
// the site: the carousel animation, the contact form submitter and the
// theme toggle.
package static
