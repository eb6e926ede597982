package graph

// parsedRelation is a relation resolved to its traversal parameters.
type parsedRelation struct {
	// outbound is true when the relation declares To: edges go from the
	// source node to the related kind. Otherwise the source node is
	// reached by inbound edges from the related kind.
	outbound    bool
	relatedKind string
	edgeKind    string
}

func parseRelation(r Relation) parsedRelation {
	if r.From != "" {
		return parsedRelation{outbound: false, relatedKind: r.From, edgeKind: r.EdgeKind}
	}
	return parsedRelation{outbound: true, relatedKind: r.To, edgeKind: r.EdgeKind}
}

// RelationsFor returns the relations declared for a node kind, empty when
// the kind has none.
func (r *Repository) RelationsFor(kind string) map[string]Relation {
	rels := r.relations[kind]
	if rels == nil {
		return map[string]Relation{}
	}
	return rels
}

// relation resolves (kind, name) to a declared relation.
func (r *Repository) relation(kind, name string) (Relation, bool) {
	rel, ok := r.relations[kind][name]
	return rel, ok
}

// isRelation reports whether name is a declared relation of kind. Query,
// create and patch inputs are partitioned into value fields and relation
// fields with this test.
func (r *Repository) isRelation(kind, name string) bool {
	_, ok := r.relations[kind][name]
	return ok
}

func validateRelations(rels Relations) error {
	for kind, byName := range rels {
		for name, rel := range byName {
			hasFrom := rel.From != ""
			hasTo := rel.To != ""
			if hasFrom == hasTo {
				return validationErr("relations."+kind+"."+name, "exactly one of from/to", rel)
			}
		}
	}
	return nil
}
