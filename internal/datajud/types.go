package datajud

// SearchRequest is the Elasticsearch query body sent to `_search`.
type SearchRequest struct {
	Query Query `json:"query"`
}

type Query struct {
	Match map[string]string `json:"match"`
}

// NewSearchRequest builds an exact match on numeroProcesso.
func NewSearchRequest(number string) SearchRequest {
	return SearchRequest{Query: Query{Match: map[string]string{"numeroProcesso": number}}}
}

// SearchResponse is the subset of the DataJud response the bridge reads.
// Fields nothing reads are left out so a type change upstream cannot break
// decoding.
type SearchResponse struct {
	Hits Hits `json:"hits"`
}

type Hits struct {
	Total Total `json:"total"`
	Hits  []Hit `json:"hits"`
}

type Total struct {
	Value int `json:"value"`
}

type Hit struct {
	Source Processo `json:"_source"`
}

// Processo is a court process document.
type Processo struct {
	NumeroProcesso  string      `json:"numeroProcesso"`
	Classe          Named       `json:"classe"`
	Tribunal        string      `json:"tribunal"`
	OrgaoJulgador   Named       `json:"orgaoJulgador"`
	DataAjuizamento string      `json:"dataAjuizamento"`
	Movimentos      []Movimento `json:"movimentos"`
}

// Named is the {codigo, nome} pair DataJud uses for classes and courts.
type Named struct {
	Nome string `json:"nome"`
}

// Movimento is a docket event.
type Movimento struct {
	Nome     string `json:"nome"`
	DataHora string `json:"dataHora"`
}

// First returns the first hit's document, or false when the response has
// no hits.
func (r *SearchResponse) First() (*Processo, bool) {
	if r == nil || r.Hits.Total.Value == 0 || len(r.Hits.Hits) == 0 {
		return nil, false
	}
	return &r.Hits.Hits[0].Source, true
}
