package driver

const (
	// RecordInteractionQuery merges the full structure for one validated
	// finding. The paper is keyed by its PMID; MERGE keeps every node and
	// edge singular, repeated findings only overwrite the evidence fields.
	RecordInteractionQuery = `
		MERGE (d:Drug {name: $drug})
		MERGE (v:Virus {name: $virus})
		MERGE (p:Paper {pmid: $pmid})
		SET p.title = $title
		MERGE (d)-[r:POTENTIAL_CANDIDATE]->(v)
		SET r.evidence = $evidence,
			r.confidence = $confidence,
			r.last_updated = datetime()
		MERGE (d)-[:MENTIONED_IN]->(p)
	`

	// RecordInteractionByTitleQuery is the fallback for papers without an
	// external identifier; the title becomes the identity key.
	RecordInteractionByTitleQuery = `
		MERGE (d:Drug {name: $drug})
		MERGE (v:Virus {name: $virus})
		MERGE (p:Paper {title: $title})
		MERGE (d)-[r:POTENTIAL_CANDIDATE]->(v)
		SET r.evidence = $evidence,
			r.confidence = $confidence,
			r.last_updated = datetime()
		MERGE (d)-[:MENTIONED_IN]->(p)
	`

	// NeighborhoodQuery expands up to two hops from every virus whose name
	// contains the query. Paths through a different virus are excluded so an
	// unrelated virus sharing a drug does not pull its whole cluster in.
	NeighborhoodQuery = `
		MATCH (v:Virus)
		WHERE toLower(v.name) CONTAINS toLower($query)
		MATCH path = (v)-[*1..2]-(n)
		WHERE ALL(m IN nodes(path) WHERE NOT m:Virus OR m = v)
		RETURN path
		LIMIT 200
	`

	// InteractionsQuery lists every candidate edge pointing at a matched
	// virus, with the distinct paper titles the drug is mentioned in.
	InteractionsQuery = `
		MATCH (d:Drug)-[r:POTENTIAL_CANDIDATE]->(v:Virus)
		WHERE toLower(v.name) CONTAINS toLower($query)
		OPTIONAL MATCH (d)-[:MENTIONED_IN]->(p:Paper)
		RETURN d.name AS drug,
			r.evidence AS evidence,
			r.confidence AS confidence,
			collect(DISTINCT p.title) AS papers
	`
)
