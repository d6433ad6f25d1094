package qbank

// ModuleObjectives is one entry of a document's learning_objectives mapping.
type ModuleObjectives struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Pages      string   `json:"pages"`
	Objectives []string `json:"objectives"`
}

// LearningObjectives extracts the optional learning_objectives mapping in
// document order. Missing or malformed entries degrade to defaults rather
// than erroring; the name falls back to the module key.
func (d *Document) LearningObjectives() []ModuleObjectives {
	if d == nil || d.Root == nil || d.Root.Kind() != KindObject {
		return nil
	}
	lo, ok := d.Root.Field("learning_objectives")
	if !ok || lo.Kind() != KindObject {
		return nil
	}
	var out []ModuleObjectives
	for _, key := range lo.Keys() {
		info, _ := lo.Field(key)
		mo := ModuleObjectives{Key: key, Name: key, Pages: "-"}
		if info.Kind() == KindObject {
			if name, ok := info.Field("name"); ok && name.Text() != "" {
				mo.Name = name.Text()
			}
			if pages, ok := info.Field("pages"); ok && pages.Text() != "" {
				mo.Pages = pages.Text()
			}
			if objs, ok := info.Field("objectives"); ok {
				for _, o := range objs.Items() {
					mo.Objectives = append(mo.Objectives, o.Text())
				}
			}
		}
		out = append(out, mo)
	}
	return out
}
