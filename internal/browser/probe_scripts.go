package browser

func attributesScript() string {
	return `el => {
		const attrs = {};
		for (const attr of el.attributes) {
			attrs[attr.name] = attr.value;
		}
		return attrs;
	}`
}

func associatedLabelScript() string {
	return `el => {
		if (el.id) {
			const label = document.querySelector('label[for="' + CSS.escape(el.id) + '"]');
			if (label && label.innerText.trim()) {
				return label.innerText.trim();
			}
		}
		const ancestor = el.closest('label');
		if (ancestor && ancestor.innerText.trim()) {
			return ancestor.innerText.trim();
		}
		return '';
	}`
}

func textByIDScript() string {
	return `(el, id) => {
		const target = document.getElementById(id);
		return target ? target.innerText.trim() : '';
	}`
}
