package importer

import "strings"

// csvHeaders is the exact header list the importer recognizes. Only title,
// slug and content are mandatory.
var csvHeaders = []string{
	"title", "slug", "old_slug", "content", "excerpt", "author",
	"categories", "tags", "meta_title", "meta_description",
	"featured_image_url", "featured_image_alt", "published_at", "article_type",
}

// CSVTemplate returns the downloadable import template: the header row plus
// two example rows, one demonstrating multi-paragraph quoted content and one
// demonstrating doubled-quote escaping.
func CSVTemplate() string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeaders, ","))
	b.WriteString("\n")
	b.WriteString(`"AI Adoption in Singapore Banks","ai-adoption-singapore-banks","2019/05/ai-banks","<!-- wp:paragraph --><p>First paragraph.</p><!-- /wp:paragraph --><!-- wp:paragraph --><p>Second paragraph.</p><!-- /wp:paragraph -->","How Singapore banks roll out AI.","jane","Business,Finance","AI,Banking","AI Adoption in Singapore Banks","A look at AI rollouts.","https://cdn.example.com/banks.jpg","Bank trading floor","2024-03-01","news"` + "\n")
	b.WriteString(`"Quoted ""Smart City"" Pilots","quoted-smart-city-pilots",,"<!-- wp:paragraph --><p>He said ""ambitious"" plans,` + "\n" +
		`spanning two lines.</p><!-- /wp:paragraph -->","Pilot programs, quoted.","","Technology","Smart Cities",,,,,"2024-04-15","feature"` + "\n")
	return b.String()
}
