package profiler

import "strings"

// FieldKind is the declared shape of a template leaf value.
type FieldKind int

// Template leaf kinds.
const (
	KindString FieldKind = iota
	KindList
)

// Field describes one template leaf: its name, the human-readable
// description shown to the model, and the value shape expected back.
type Field struct {
	Name        string
	Description string
	Kind        FieldKind
}

// TemplateSection groups related fields under a section name.
type TemplateSection struct {
	Name   string
	Fields []Field
}

// Template is the fixed nested schema describing every field an extraction
// should populate. It is read-only for the life of a job.
type Template []TemplateSection

// Mandatory sections a valid extraction must contain.
const (
	SectionCompanySnapshot = "company_snapshot"
	SectionMissionValues   = "mission_vision_values"
	SectionContactInfo     = "contact_info"
	SectionSocialProof     = "social_proof"
)

// Section returns the named section, if present.
func (t Template) Section(name string) (*TemplateSection, bool) {
	for i := range t {
		if t[i].Name == name {
			return &t[i], true
		}
	}
	return nil, false
}

// FieldKind returns the declared kind of a leaf, if the leaf exists.
func (t Template) FieldKind(section, field string) (FieldKind, bool) {
	s, ok := t.Section(section)
	if !ok {
		return KindString, false
	}
	for _, f := range s.Fields {
		if f.Name == field {
			return f.Kind, true
		}
	}
	return KindString, false
}

// LeafCount returns the total number of leaves across all sections.
func (t Template) LeafCount() int {
	var n int
	for _, s := range t {
		n += len(s.Fields)
	}
	return n
}

// PromptJSON serializes the template as an indented JSON object mapping
// section name to field name to description, preserving section and field
// order so prompts are deterministic.
func (t Template) PromptJSON() string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, s := range t {
		b.WriteString("  ")
		b.WriteString(quoteJSON(s.Name))
		b.WriteString(": {\n")
		for j, f := range s.Fields {
			b.WriteString("    ")
			b.WriteString(quoteJSON(f.Name))
			b.WriteString(": ")
			b.WriteString(quoteJSON(f.Description))
			if j < len(s.Fields)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString("  }")
		if i < len(t)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func quoteJSON(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// DefaultTemplate returns the built-in company-profile template.
func DefaultTemplate() Template {
	return Template{
		{Name: "cover_page", Fields: []Field{
			{Name: "company_name", Description: "Official company name"},
			{Name: "tagline_slogan", Description: "Main tagline or slogan"},
			{Name: "logo_url", Description: "URL to company logo"},
			{Name: "date_of_issue", Description: "Date of profile creation"},
		}},
		{Name: SectionCompanySnapshot, Fields: []Field{
			{Name: "founded", Description: "Year company was founded"},
			{Name: "headquarters", Description: "Location of headquarters with full address"},
			{Name: "legal_structure", Description: "Company legal structure (LLC, Corp, etc.)"},
			{Name: "number_of_employees", Description: "Employee count or size range"},
			{Name: "annual_revenue_funding", Description: "Revenue figures or funding amounts"},
			{Name: "website", Description: "Official website URL"},
			{Name: "industries_sectors", Description: "Primary and secondary industry sectors"},
		}},
		{Name: SectionMissionValues, Fields: []Field{
			{Name: "mission_statement", Description: "What the company exists to achieve"},
			{Name: "vision_statement", Description: "Long-term aspirational goal"},
			{Name: "core_values", Description: "List of company core values with descriptions", Kind: KindList},
		}},
		{Name: "history_milestones", Fields: []Field{
			{Name: "key_milestones", Description: "List of significant company milestones with years", Kind: KindList},
			{Name: "founding_story", Description: "How and why the company was started"},
			{Name: "major_achievements", Description: "Notable achievements and growth markers", Kind: KindList},
		}},
		{Name: "leadership_governance", Fields: []Field{
			{Name: "executive_team", Description: "C-level executives with roles and brief bios", Kind: KindList},
			{Name: "board_directors_advisors", Description: "Board members and key advisors", Kind: KindList},
			{Name: "founders", Description: "Company founders and their backgrounds", Kind: KindList},
		}},
		{Name: "products_solutions", Fields: []Field{
			{Name: "product_portfolio", Description: "Detailed list of products with descriptions", Kind: KindList},
			{Name: "launch_years", Description: "When key products were launched"},
			{Name: "key_features", Description: "Competitive advantages of each product", Kind: KindList},
			{Name: "pricing_models", Description: "How products are priced"},
			{Name: "product_roadmap", Description: "Future product development plans"},
		}},
		{Name: "services", Fields: []Field{
			{Name: "service_offerings", Description: "Detailed service descriptions", Kind: KindList},
			{Name: "methodology_delivery", Description: "How services are delivered"},
			{Name: "engagement_models", Description: "Different ways clients can engage", Kind: KindList},
			{Name: "pricing_structure", Description: "Service pricing and engagement terms"},
			{Name: "success_metrics", Description: "KPIs and success measurements"},
		}},
		{Name: "markets_customers", Fields: []Field{
			{Name: "target_segments", Description: "Detailed customer personas and segments", Kind: KindList},
			{Name: "geographical_markets", Description: "Countries and regions served", Kind: KindList},
			{Name: "key_clients", Description: "Notable clients and customer logos", Kind: KindList},
		}},
		{Name: "value_proposition", Fields: []Field{
			{Name: "unique_selling_points", Description: "What makes the company unique", Kind: KindList},
			{Name: "competitive_differentiators", Description: "How they differ from competitors", Kind: KindList},
			{Name: "proof_points", Description: "Data, awards, and validation of claims", Kind: KindList},
		}},
		{Name: "operating_locations", Fields: []Field{
			{Name: "countries_of_operation", Description: "All countries where company operates", Kind: KindList},
			{Name: "offices_facilities", Description: "Physical locations with addresses", Kind: KindList},
			{Name: "remote_work_policy", Description: "Remote and hybrid work arrangements"},
		}},
		{Name: "key_metrics_performance", Fields: []Field{
			{Name: "growth_metrics", Description: "Year-over-year growth percentages"},
			{Name: "market_share", Description: "Position in the market"},
			{Name: "customer_satisfaction", Description: "NPS, CSAT, and other satisfaction metrics"},
			{Name: "retention_churn", Description: "Customer retention and churn rates"},
			{Name: "other_kpis", Description: "Business-specific key performance indicators"},
		}},
		{Name: "financial_highlights", Fields: []Field{
			{Name: "revenue_trends", Description: "Revenue growth over recent years"},
			{Name: "profitability", Description: "Profit margins and financial health"},
			{Name: "funding_rounds", Description: "Investment rounds and funding history", Kind: KindList},
			{Name: "investors", Description: "Key investors and investment partners", Kind: KindList},
		}},
		{Name: "certifications_compliance", Fields: []Field{
			{Name: "standards_certifications", Description: "ISO, SOC 2, PCI-DSS, and other certifications", Kind: KindList},
			{Name: "regulatory_approvals", Description: "Industry-specific regulatory compliance"},
			{Name: "security_privacy", Description: "Security and privacy policies and measures"},
		}},
		{Name: "partnerships_alliances", Fields: []Field{
			{Name: "technology_partners", Description: "Key technology and integration partners", Kind: KindList},
			{Name: "channel_partners", Description: "Distribution and channel partnerships", Kind: KindList},
			{Name: "strategic_alliances", Description: "Strategic business partnerships", Kind: KindList},
		}},
		{Name: "awards_recognition", Fields: []Field{
			{Name: "industry_awards", Description: "Awards received with years and issuers", Kind: KindList},
			{Name: "recognition", Description: "Media recognition and industry acknowledgments"},
			{Name: "rankings", Description: "Industry rankings and analyst recognition"},
		}},
		{Name: "csr_sustainability", Fields: []Field{
			{Name: "environmental_initiatives", Description: "Environmental and sustainability programs", Kind: KindList},
			{Name: "social_impact", Description: "Community and social impact programs"},
			{Name: "esg_governance", Description: "ESG scores and governance practices"},
		}},
		{Name: "technology_innovation", Fields: []Field{
			{Name: "rd_focus", Description: "Research and development focus areas"},
			{Name: "patents_ip", Description: "Patents and intellectual property portfolio"},
			{Name: "technology_stack", Description: "Technology platforms and infrastructure"},
			{Name: "innovation_programs", Description: "Innovation labs and development programs"},
		}},
		{Name: "risk_management", Fields: []Field{
			{Name: "key_risks", Description: "Major business risks and mitigation strategies", Kind: KindList},
			{Name: "governance_framework", Description: "Corporate governance structure"},
			{Name: "compliance_programs", Description: "Compliance and risk management programs"},
		}},
		{Name: "media_public_relations", Fields: []Field{
			{Name: "press_releases", Description: "Recent press releases and announcements", Kind: KindList},
			{Name: "media_coverage", Description: "Notable media coverage and mentions", Kind: KindList},
			{Name: "thought_leadership", Description: "White papers, blogs, and thought leadership content"},
		}},
		{Name: "culture_career", Fields: []Field{
			{Name: "employer_value_proposition", Description: "What makes the company a great place to work"},
			{Name: "diversity_inclusion", Description: "D&I initiatives and commitments"},
			{Name: "learning_development", Description: "Employee development and training programs"},
			{Name: "open_positions", Description: "Current job openings and career opportunities", Kind: KindList},
		}},
		{Name: SectionContactInfo, Fields: []Field{
			{Name: "email", Description: "Primary contact email address"},
			{Name: "phone", Description: "Primary phone number"},
			{Name: "address", Description: "Official business address"},
			{Name: "social_media", Description: "Social media profile URLs", Kind: KindList},
			{Name: "investor_media_contacts", Description: "Specific contacts for investors and media"},
		}},
		{Name: SectionSocialProof, Fields: []Field{
			{Name: "testimonials", Description: "Customer testimonials and success quotes", Kind: KindList},
			{Name: "case_studies", Description: "Case studies and named client mentions", Kind: KindList},
		}},
	}
}
