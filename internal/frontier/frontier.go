package frontier

/*
Frontier Responsibilities
- Maintain BFS ordering (FIFOQueue of CrawlToken)
- Deduplicate URLs (Set of canonical URL strings)
- Track crawl depth alongside each queued URL
- Knows nothing about:
	- fetching
	- extraction
	- markdown
	- storage
	- which hosts/paths are in scope

Admission policy (which discovered links are even worth enqueueing) is not
a frontier concern here: it is a pure predicate owned by the CrawlEngine
that assembles a frontier for one crawl run, since it needs the run's
allowed-hosts/prefix configuration that this package has no business
holding.
*/
