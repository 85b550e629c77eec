package i18n

// Message keys used by the tag bar widget.
const (
	KeyActiveFilters = "tagbar.active_filters"
	KeyNoFilters     = "tagbar.no_filters"
	KeyClearAll      = "tagbar.clear_all"
	KeyRemoveTag     = "tagbar.remove_tag"
)

var messagesEN = map[string]string{
	KeyActiveFilters: "Active filters ({count})",
	KeyNoFilters:     "No active filters",
	KeyClearAll:      "Clear all",
	KeyRemoveTag:     "Remove {key}: {value}",
}

var messagesDE = map[string]string{
	KeyActiveFilters: "Aktive Filter ({count})",
	KeyNoFilters:     "Keine aktiven Filter",
	KeyClearAll:      "Alle entfernen",
	KeyRemoveTag:     "{key}: {value} entfernen",
}

var messagesFR = map[string]string{
	KeyActiveFilters: "Filtres actifs ({count})",
	KeyNoFilters:     "Aucun filtre actif",
	KeyClearAll:      "Tout effacer",
	KeyRemoveTag:     "Supprimer {key} : {value}",
}
